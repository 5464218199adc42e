package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/organaize/organaize/internal/identity/entity"
	"github.com/organaize/organaize/internal/pkg/config"
	"github.com/organaize/organaize/internal/pkg/goerror"
	"github.com/organaize/organaize/internal/pkg/hash"
	"github.com/organaize/organaize/internal/pkg/instrument"
	"github.com/organaize/organaize/internal/pkg/jwt"
	"github.com/organaize/organaize/internal/pkg/validator"
)

type fakeRepo struct {
	accountsByUsername map[string]*entity.Account
	accountsByEmail    map[string]*entity.Account
	codesByAccountID   map[int64]*entity.VerificationCode

	created        []entity.NewAccount
	upserted       []entity.VerificationCode
	verifiedIDs    []int64
	passwordHashes map[int64]string

	createErr error
	lookups   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accountsByUsername: map[string]*entity.Account{},
		accountsByEmail:    map[string]*entity.Account{},
		codesByAccountID:   map[int64]*entity.VerificationCode{},
		passwordHashes:     map[int64]string{},
	}
}

func (f *fakeRepo) add(acc *entity.Account) {
	f.accountsByUsername[acc.Username] = acc
	f.accountsByEmail[acc.Email] = acc
}

func (f *fakeRepo) GetAccountByUsername(_ context.Context, username string) (*entity.Account, error) {
	f.lookups++
	if acc, ok := f.accountsByUsername[username]; ok {
		return acc, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) GetAccountByEmail(_ context.Context, email string) (*entity.Account, error) {
	f.lookups++
	if acc, ok := f.accountsByEmail[email]; ok {
		return acc, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) GetVerificationCodeByAccountID(_ context.Context, accountID int64) (*entity.VerificationCode, error) {
	if vc, ok := f.codesByAccountID[accountID]; ok {
		return vc, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) CreateAccountWithVerification(_ context.Context, acc entity.NewAccount, code entity.VerificationCode) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, acc)
	f.codesByAccountID[acc.ID] = &code
	return nil
}

func (f *fakeRepo) UpsertVerificationCode(_ context.Context, code entity.VerificationCode) error {
	f.upserted = append(f.upserted, code)
	f.codesByAccountID[code.AccountID] = &code
	return nil
}

func (f *fakeRepo) MarkAccountVerified(_ context.Context, accountID int64) error {
	f.verifiedIDs = append(f.verifiedIDs, accountID)
	return nil
}

func (f *fakeRepo) UpdateAccountPassword(_ context.Context, accountID int64, hashed string) error {
	f.passwordHashes[accountID] = hashed
	return nil
}

type fakePublisher struct {
	events []OTPIssuedEvent
	err    error
}

func (f *fakePublisher) PublishOTPIssued(_ context.Context, msg OTPIssuedEvent) error {
	f.events = append(f.events, msg)
	return f.err
}

type fakeSessions struct {
	revoked map[string]bool
	err     error
}

func (f *fakeSessions) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[tokenID] = true
	return nil
}

func (f *fakeSessions) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[tokenID], nil
}

type seqNumberID struct{ next uint64 }

func (s *seqNumberID) Generate() uint64 {
	s.next++
	return s.next
}

type fixedStringID struct{ value string }

func (f fixedStringID) Generate() string { return f.value }

type fixedCodes struct {
	code int
	err  error
}

func (f fixedCodes) Generate() (int, error) { return f.code, f.err }

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type fixture struct {
	uc       *Usecase
	repo     *fakeRepo
	pub      *fakePublisher
	sessions *fakeSessions
	clock    fixedClock
	hasher   hash.Hash
	jwt      jwt.JWT
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  identity:
    otp_ttl_minutes: 15
`))
	if err != nil {
		t.Fatalf("new config: %v", err)
	}

	// Token verification checks expiry against real time, so the fixed clock is
	// anchored to now rather than a canned date.
	clk := fixedClock{now: time.Now().Truncate(time.Second)}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:     "organaize-test",
		Audiences:  []string{"organaize"},
		TTLMinutes: 24 * time.Hour,
		Clock:      clk,
		UUID:       fixedStringID{value: "jti-1"},
	})
	if err != nil {
		t.Fatalf("new jwt: %v", err)
	}

	repo := newFakeRepo()
	pub := &fakePublisher{}
	sessions := &fakeSessions{}
	hasher := hash.NewBcrypt(4, "")

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: pub,
		Validator:     v10,
		Config:        cfg,
		Hasher:        hasher,
		UID:           &seqNumberID{},
		Codes:         fixedCodes{code: 4321},
		Clock:         clk,
		JWT:           signer,
		Sessions:      sessions,
		Instrument:    instrument.NewNoop(),
	})

	return &fixture{
		uc:       uc,
		repo:     repo,
		pub:      pub,
		sessions: sessions,
		clock:    clk,
		hasher:   hasher,
		jwt:      signer,
	}
}

func (f *fixture) addAccount(t *testing.T, username, email, password string, verified bool) *entity.Account {
	t.Helper()

	hashed, err := f.hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	acc := &entity.Account{
		ID:       int64(len(f.repo.accountsByUsername) + 100),
		Username: username,
		Email:    email,
		Password: string(hashed),
		Verified: verified,
	}
	f.repo.add(acc)

	return acc
}

func assertBusinessError(t *testing.T, err error, wantStatus int, wantMsg string) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror, got %v", err)
	}
	if gerr.StatusCode() != wantStatus {
		t.Fatalf("expected status %d, got %d (%v)", wantStatus, gerr.StatusCode(), err)
	}
	if wantMsg != "" && gerr.Msg() != wantMsg {
		t.Fatalf("expected message %q, got %q", wantMsg, gerr.Msg())
	}
}

func TestSignup(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "  Alice@Example.com ",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if out.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", out.Email)
	}
	if len(f.repo.created) != 1 {
		t.Fatalf("expected one created account, got %d", len(f.repo.created))
	}
	if f.repo.created[0].Username != "alice" {
		t.Fatalf("unexpected created username %q", f.repo.created[0].Username)
	}
	if f.repo.created[0].Password == "Secret123!" {
		t.Fatal("password must be stored hashed")
	}

	if len(f.pub.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(f.pub.events))
	}
	event := f.pub.events[0]
	if event.Code != 4321 || event.Email != "alice@example.com" {
		t.Fatalf("unexpected event %+v", event)
	}
	if want := f.clock.now.Add(15 * time.Minute); !event.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, event.ExpiresAt)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "alice", "alice@example.com", "Secret123!", true)

	_, err := f.uc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "Secret123!",
	})

	assertBusinessError(t, err, 400, "Username already exists")
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "alice", "alice@example.com", "Secret123!", true)

	_, err := f.uc.Signup(context.Background(), SignupInput{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "Secret123!",
	})

	assertBusinessError(t, err, 400, "Email already exists")
}

func TestSignupConstraintRace(t *testing.T) {
	// Pre-checks pass but the insert loses the race; the unique index decides.
	f := newFixture(t)
	f.repo.createErr = entity.ErrUsernameTaken

	_, err := f.uc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Secret123!",
	})

	assertBusinessError(t, err, 400, "Username already exists")
}

func TestSignupPublishFailureStillSucceeds(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("broker down")

	_, err := f.uc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("signup must not fail on publish error: %v", err)
	}
	if len(f.repo.created) != 1 {
		t.Fatal("account must still be created")
	}
}

func TestSignupValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Signup(context.Background(), SignupInput{
		Username: "x",
		Email:    "not-an-email",
		Password: "short",
	})

	assertBusinessError(t, err, 422, "")
}

func TestLoginVerified(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount(t, "alice", "alice@example.com", "Secret123!", true)

	out, err := f.uc.Login(context.Background(), LoginInput{Username: "alice", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if !out.Verified {
		t.Fatal("expected verified=true")
	}
	if out.Token == "" {
		t.Fatal("expected session token")
	}
	if out.AccountID != acc.ID {
		t.Fatalf("expected account id %d, got %d", acc.ID, out.AccountID)
	}

	claims, err := f.jwt.Verify(out.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != acc.ID || claims.UserName != "alice" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if len(f.pub.events) != 0 {
		t.Fatalf("verified login must not issue a code, got %d events", len(f.pub.events))
	}
	if len(f.repo.upserted) != 0 {
		t.Fatal("verified login must not touch the verification row")
	}
}

func TestLoginByEmail(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "alice", "alice@example.com", "Secret123!", true)

	out, err := f.uc.Login(context.Background(), LoginInput{Username: "Alice@Example.com", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login by email: %v", err)
	}
	if !out.Verified {
		t.Fatal("expected verified=true")
	}
}

func TestLoginUnknownAndWrongPasswordCollapse(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "alice", "alice@example.com", "Secret123!", true)

	_, unknownErr := f.uc.Login(context.Background(), LoginInput{Username: "nobody", Password: "Secret123!"})
	assertBusinessError(t, unknownErr, 401, "Username/email or password incorrect")

	_, wrongErr := f.uc.Login(context.Background(), LoginInput{Username: "alice", Password: "Wrong123!"})
	assertBusinessError(t, wrongErr, 401, "Username/email or password incorrect")

	if unknownErr.Error() != wrongErr.Error() {
		t.Fatal("unknown user and wrong password must be indistinguishable")
	}
}

func TestLoginUnverifiedReissuesCode(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount(t, "alice", "alice@example.com", "Secret123!", false)

	out, err := f.uc.Login(context.Background(), LoginInput{Username: "alice", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if out.Verified {
		t.Fatal("expected verified=false")
	}
	if out.Token != "" {
		t.Fatal("unverified login must not issue a token")
	}
	if len(f.repo.upserted) != 1 || f.repo.upserted[0].AccountID != acc.ID {
		t.Fatalf("expected one upserted code for account %d", acc.ID)
	}
	if len(f.pub.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(f.pub.events))
	}
}

func TestVerifyOTP(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount(t, "alice", "alice@example.com", "Secret123!", false)
	f.repo.codesByAccountID[acc.ID] = &entity.VerificationCode{
		ID:        1,
		AccountID: acc.ID,
		Code:      4321,
		CreatedAt: f.clock.now,
		ExpiresAt: f.clock.now.Add(15 * time.Minute),
	}

	out, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "alice@example.com", OTP: " 4321 "})
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	if out.AccountID != acc.ID {
		t.Fatalf("expected account id %d, got %d", acc.ID, out.AccountID)
	}
	if len(f.repo.verifiedIDs) != 1 || f.repo.verifiedIDs[0] != acc.ID {
		t.Fatalf("expected account %d marked verified", acc.ID)
	}
}

func TestVerifyOTPWrongCodeKeepsRecord(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount(t, "alice", "alice@example.com", "Secret123!", false)
	f.repo.codesByAccountID[acc.ID] = &entity.VerificationCode{
		AccountID: acc.ID,
		Code:      4321,
		ExpiresAt: f.clock.now.Add(15 * time.Minute),
	}

	_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "alice@example.com", OTP: "9999"})
	assertBusinessError(t, err, 400, "Invalid OTP")

	if len(f.repo.verifiedIDs) != 0 {
		t.Fatal("wrong code must not verify the account")
	}
	if f.repo.codesByAccountID[acc.ID].Code != 4321 {
		t.Fatal("wrong code must not mutate the stored record")
	}

	// The stored code still works afterwards.
	if _, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "alice@example.com", OTP: "4321"}); err != nil {
		t.Fatalf("stored code must remain usable: %v", err)
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount(t, "alice", "alice@example.com", "Secret123!", false)
	f.repo.codesByAccountID[acc.ID] = &entity.VerificationCode{
		AccountID: acc.ID,
		Code:      4321,
		ExpiresAt: f.clock.now.Add(-time.Minute),
	}

	_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "alice@example.com", OTP: "4321"})
	assertBusinessError(t, err, 400, "OTP has expired")

	// Expiry only fails the request; account and record survive.
	if _, ok := f.repo.accountsByEmail["alice@example.com"]; !ok {
		t.Fatal("account must survive an expired code")
	}
	if _, ok := f.repo.codesByAccountID[acc.ID]; !ok {
		t.Fatal("verification record must survive an expired code")
	}
}

func TestVerifyOTPAlreadyVerified(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "alice", "alice@example.com", "Secret123!", true)

	out, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "alice@example.com", OTP: "0000"})
	if err != nil {
		t.Fatalf("verified account must short-circuit to success: %v", err)
	}
	if out.Username != "alice" {
		t.Fatalf("unexpected output %+v", out)
	}
	if len(f.repo.verifiedIDs) != 0 {
		t.Fatal("no write expected for an already verified account")
	}
}

func TestVerifyOTPNoRecord(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "alice", "alice@example.com", "Secret123!", false)

	_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "alice@example.com", OTP: "4321"})
	assertBusinessError(t, err, 404, "No verification code found for this account")
}

func TestVerifyOTPUnknownAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{Email: "nobody@example.com", OTP: "4321"})
	assertBusinessError(t, err, 404, "Account not found")
}

func TestResendOTPReplacesCode(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount(t, "alice", "alice@example.com", "Secret123!", false)
	f.repo.codesByAccountID[acc.ID] = &entity.VerificationCode{
		AccountID: acc.ID,
		Code:      1111,
		ExpiresAt: f.clock.now.Add(10 * time.Minute),
	}

	if err := f.uc.ResendOTP(context.Background(), ResendOTPInput{Email: "alice@example.com"}); err != nil {
		t.Fatalf("resend otp: %v", err)
	}

	if f.repo.codesByAccountID[acc.ID].Code != 4321 {
		t.Fatal("resend must replace the pending code")
	}
	if len(f.pub.events) != 1 {
		t.Fatalf("expected one published event, got %d", len(f.pub.events))
	}
}

func TestResendOTPUnknownAccount(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ResendOTP(context.Background(), ResendOTPInput{Email: "nobody@example.com"})
	assertBusinessError(t, err, 404, "Account not found")
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount(t, "alice", "alice@example.com", "OldSecret123!", true)

	err := f.uc.ResetPassword(context.Background(), ResetPasswordInput{
		Email:           "alice@example.com",
		NewPassword:     "NewSecret123!",
		ConfirmPassword: "NewSecret123!",
	})
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}

	hashed, ok := f.repo.passwordHashes[acc.ID]
	if !ok {
		t.Fatal("expected password update")
	}
	if !f.hasher.Verify(hashed, "NewSecret123!") {
		t.Fatal("stored digest must match the new password")
	}
}

func TestResetPasswordMismatchBeforeLookup(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ResetPassword(context.Background(), ResetPasswordInput{
		Email:           "alice@example.com",
		NewPassword:     "NewSecret123!",
		ConfirmPassword: "OtherSecret123!",
	})

	assertBusinessError(t, err, 400, "Passwords do not match")
	if f.repo.lookups != 0 {
		t.Fatal("mismatch must be rejected before any store access")
	}
}

func TestResetPasswordSameAsOld(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "alice", "alice@example.com", "Secret123!", true)

	err := f.uc.ResetPassword(context.Background(), ResetPasswordInput{
		Email:           "alice@example.com",
		NewPassword:     "Secret123!",
		ConfirmPassword: "Secret123!",
	})

	assertBusinessError(t, err, 400, "New password must be different from the old password")
}

func TestResetPasswordUnknownAccount(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ResetPassword(context.Background(), ResetPasswordInput{
		Email:           "nobody@example.com",
		NewPassword:     "NewSecret123!",
		ConfirmPassword: "NewSecret123!",
	})

	assertBusinessError(t, err, 404, "Account not found")
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "alice", "alice@example.com", "Secret123!", true)

	out, err := f.uc.Login(context.Background(), LoginInput{Username: "alice", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := f.uc.Logout(context.Background(), out.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if !f.sessions.revoked["jti-1"] {
		t.Fatal("expected token ID on the denylist")
	}

	status := f.uc.AuthStatus(context.Background(), out.Token)
	if status.IsAuthenticated {
		t.Fatal("revoked session must not authenticate")
	}
}

func TestLogoutTolerantOfBadTokens(t *testing.T) {
	f := newFixture(t)

	if err := f.uc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout with empty token: %v", err)
	}
	if err := f.uc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("logout with invalid token: %v", err)
	}
}

func TestAuthStatus(t *testing.T) {
	f := newFixture(t)
	acc := f.addAccount(t, "alice", "alice@example.com", "Secret123!", true)

	out, err := f.uc.Login(context.Background(), LoginInput{Username: "alice", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	status := f.uc.AuthStatus(context.Background(), out.Token)
	if !status.IsAuthenticated {
		t.Fatal("expected authenticated status")
	}
	if status.AccountID != acc.ID || status.Username != "alice" || status.Email != "alice@example.com" {
		t.Fatalf("unexpected status %+v", status)
	}

	if anon := f.uc.AuthStatus(context.Background(), ""); anon.IsAuthenticated {
		t.Fatal("empty token must not authenticate")
	}
	if bad := f.uc.AuthStatus(context.Background(), "garbage"); bad.IsAuthenticated {
		t.Fatal("invalid token must not authenticate")
	}
}

func TestAuthStatusStoreErrorFailsClosed(t *testing.T) {
	f := newFixture(t)
	f.addAccount(t, "alice", "alice@example.com", "Secret123!", true)

	out, err := f.uc.Login(context.Background(), LoginInput{Username: "alice", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	f.sessions.err = errors.New("redis down")

	if status := f.uc.AuthStatus(context.Background(), out.Token); status.IsAuthenticated {
		t.Fatal("a revocation check failure must not authenticate")
	}
}
