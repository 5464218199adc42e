package event

const OTPIssuedDestination string = "otp_issued"
const OTPIssuedDestinationConsumerNotification string = "otp_issued_notification"

type OTPIssuedMessage struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Code      int    `json:"code"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds
}
