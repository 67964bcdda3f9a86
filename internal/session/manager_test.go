package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"securebank/internal/backend"
	"securebank/internal/bank"
	"securebank/internal/database/repository"
	"securebank/internal/models"
)

// stubProvider lets each test script the backend calls the manager makes.
type stubProvider struct {
	loginFn         func(email, password string) (backend.Credentials, error)
	signupFn        func(req bank.SignupRequest) (backend.Credentials, error)
	currentUserFn   func() (models.User, error)
	profileFn       func() (models.User, error)
	updateBalanceFn func(delta decimal.Decimal) (decimal.Decimal, error)
}

var errStubUnused = errors.New("not scripted")

func (s *stubProvider) Login(_ context.Context, email, password string) (backend.Credentials, error) {
	if s.loginFn == nil {
		return backend.Credentials{}, errStubUnused
	}
	return s.loginFn(email, password)
}

func (s *stubProvider) Signup(_ context.Context, req bank.SignupRequest) (backend.Credentials, error) {
	if s.signupFn == nil {
		return backend.Credentials{}, errStubUnused
	}
	return s.signupFn(req)
}

func (s *stubProvider) VerifyOTP(context.Context, string, string) error { return nil }

func (s *stubProvider) CurrentUser(context.Context) (models.User, error) {
	if s.currentUserFn == nil {
		return models.User{}, errStubUnused
	}
	return s.currentUserFn()
}

func (s *stubProvider) Profile(context.Context) (models.User, error) {
	if s.profileFn == nil {
		return models.User{}, errStubUnused
	}
	return s.profileFn()
}

func (s *stubProvider) UpdateProfile(context.Context, bank.ProfileUpdate) (models.User, error) {
	return models.User{}, errStubUnused
}

func (s *stubProvider) Balance(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, errStubUnused
}

func (s *stubProvider) UpdateBalance(_ context.Context, delta decimal.Decimal) (decimal.Decimal, error) {
	if s.updateBalanceFn == nil {
		return decimal.Zero, errStubUnused
	}
	return s.updateBalanceFn(delta)
}

func (s *stubProvider) SendMoney(context.Context, bank.SendMoneyRequest) (bank.TransferReceipt, error) {
	return bank.TransferReceipt{}, errStubUnused
}

func (s *stubProvider) RequestMoney(context.Context, bank.RequestMoneyRequest) (models.PaymentRequest, error) {
	return models.PaymentRequest{}, errStubUnused
}

func (s *stubProvider) QRPayment(context.Context, bank.QRPaymentRequest) (bank.TransferReceipt, error) {
	return bank.TransferReceipt{}, errStubUnused
}

func (s *stubProvider) History(context.Context, repository.TransactionFilters) ([]models.Transaction, error) {
	return nil, errStubUnused
}

func (s *stubProvider) Recent(context.Context, int) ([]models.Transaction, error) {
	return nil, errStubUnused
}

func (s *stubProvider) Contacts(context.Context) ([]models.Contact, error) {
	return nil, errStubUnused
}

func (s *stubProvider) Loans(context.Context) ([]models.Loan, error) { return nil, errStubUnused }

func (s *stubProvider) ApplyLoan(context.Context, bank.LoanApplicationRequest) (bank.LoanApplicationReceipt, error) {
	return bank.LoanApplicationReceipt{}, errStubUnused
}

func (s *stubProvider) PayEMI(context.Context, string) (bank.EMIReceipt, error) {
	return bank.EMIReceipt{}, errStubUnused
}

func (s *stubProvider) CalculateEMI(context.Context, decimal.Decimal, decimal.Decimal, int) (bank.EMIQuote, error) {
	return bank.EMIQuote{}, errStubUnused
}

func (s *stubProvider) Investments(context.Context) ([]models.Investment, error) {
	return nil, errStubUnused
}

func (s *stubProvider) Portfolio(context.Context) (models.PortfolioSummary, error) {
	return models.PortfolioSummary{}, errStubUnused
}

func (s *stubProvider) CreateInvestment(context.Context, bank.InvestmentCreateRequest) (models.Investment, error) {
	return models.Investment{}, errStubUnused
}

func (s *stubProvider) SellInvestment(context.Context, string) (bank.SaleReceipt, error) {
	return bank.SaleReceipt{}, errStubUnused
}

func testUser() models.User {
	return models.User{
		ID:            "u-1",
		Name:          "John Doe",
		Email:         "john@example.com",
		AccountNumber: "ACC1234567890",
		Balance:       decimal.RequireFromString("45750.50"),
		AccountType:   "Savings",
		CreatedAt:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		IsActive:      true,
	}
}

func newTestManager(t *testing.T, p backend.Provider) (*Manager, *StateStore) {
	t.Helper()
	store := NewStateStoreAt(t.TempDir())
	mgr := NewManager(store)
	mgr.SetProvider(p)
	return mgr, store
}

func TestLoginFailureLeavesStateUnset(t *testing.T) {
	t.Parallel()

	mgr, store := newTestManager(t, &stubProvider{
		loginFn: func(string, string) (backend.Credentials, error) {
			return backend.Credentials{}, errors.New("incorrect email or password")
		},
	})

	res := mgr.Login(context.Background(), "john@example.com", "wrong")
	require.False(t, res.OK)
	require.NotEmpty(t, res.Reason)

	_, ok := mgr.User()
	require.False(t, ok)
	require.Empty(t, mgr.Token())
	require.Equal(t, PhaseNone, mgr.SessionPhase())

	token, err := store.LoadToken()
	require.NoError(t, err)
	require.Empty(t, token)
	saved, err := store.LoadUser()
	require.NoError(t, err)
	require.Nil(t, saved)
}

func TestLoginSuccessSyncsMemoryAndDisk(t *testing.T) {
	t.Parallel()

	want := testUser()
	mgr, store := newTestManager(t, &stubProvider{
		loginFn: func(email, password string) (backend.Credentials, error) {
			require.Equal(t, "john@example.com", email)
			require.Equal(t, "password123", password)
			return backend.Credentials{User: want, AccessToken: "tok-abc", TokenType: "bearer"}, nil
		},
	})

	res := mgr.Login(context.Background(), "john@example.com", "password123")
	require.True(t, res.OK)
	require.Equal(t, PhaseConfirmed, mgr.SessionPhase())
	require.Equal(t, "tok-abc", mgr.Token())

	got, ok := mgr.User()
	require.True(t, ok)
	require.Equal(t, want.Email, got.Email)
	require.True(t, got.Balance.Equal(want.Balance))

	token, err := store.LoadToken()
	require.NoError(t, err)
	require.Equal(t, "tok-abc", token)
	saved, err := store.LoadUser()
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, got.Email, saved.Email)
	require.True(t, got.Balance.Equal(saved.Balance))
}

func TestApplyBalanceSyncsMemoryAndDisk(t *testing.T) {
	t.Parallel()

	want := testUser()
	mgr, store := newTestManager(t, &stubProvider{
		loginFn: func(string, string) (backend.Credentials, error) {
			return backend.Credentials{User: want, AccessToken: "tok-abc", TokenType: "bearer"}, nil
		},
	})
	require.True(t, mgr.Login(context.Background(), "john@example.com", "password123").OK)

	served := decimal.RequireFromString("45500.25")
	mgr.ApplyBalance(served)

	got, ok := mgr.User()
	require.True(t, ok)
	require.True(t, got.Balance.Equal(served), "balance was %s", got.Balance)

	saved, err := store.LoadUser()
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.True(t, saved.Balance.Equal(served))
}

func TestApplyBalanceWithoutSession(t *testing.T) {
	t.Parallel()

	mgr, store := newTestManager(t, &stubProvider{})
	mgr.ApplyBalance(decimal.NewFromInt(100))

	_, ok := mgr.User()
	require.False(t, ok)
	saved, err := store.LoadUser()
	require.NoError(t, err)
	require.Nil(t, saved)
}

func TestLogoutWhenNeverLoggedIn(t *testing.T) {
	t.Parallel()

	mgr, store := newTestManager(t, &stubProvider{})
	mgr.Logout()

	_, ok := mgr.User()
	require.False(t, ok)
	require.Empty(t, mgr.Token())
	require.Equal(t, PhaseNone, mgr.SessionPhase())
	token, err := store.LoadToken()
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestLogoutClearsEstablishedSession(t *testing.T) {
	t.Parallel()

	mgr, store := newTestManager(t, &stubProvider{
		loginFn: func(string, string) (backend.Credentials, error) {
			return backend.Credentials{User: testUser(), AccessToken: "tok-abc"}, nil
		},
	})
	require.True(t, mgr.Login(context.Background(), "john@example.com", "password123").OK)

	mgr.Logout()

	_, ok := mgr.User()
	require.False(t, ok)
	require.Empty(t, mgr.Token())
	token, err := store.LoadToken()
	require.NoError(t, err)
	require.Empty(t, token)
	saved, err := store.LoadUser()
	require.NoError(t, err)
	require.Nil(t, saved)
}

func TestInitializeConfirmsPersistedSession(t *testing.T) {
	t.Parallel()

	fresh := testUser()
	fresh.Balance = decimal.RequireFromString("44000.00")

	store := NewStateStoreAt(t.TempDir())
	require.NoError(t, store.SaveToken("tok-restored"))
	require.NoError(t, store.SaveUser(testUser()))

	mgr := NewManager(store)
	mgr.SetProvider(&stubProvider{
		currentUserFn: func() (models.User, error) { return fresh, nil },
	})
	require.True(t, mgr.Loading())

	mgr.Initialize(context.Background())

	require.False(t, mgr.Loading())
	require.Equal(t, PhaseConfirmed, mgr.SessionPhase())
	require.Equal(t, "tok-restored", mgr.Token())
	got, ok := mgr.User()
	require.True(t, ok)
	// the backend's view wins over the stale snapshot
	require.True(t, got.Balance.Equal(fresh.Balance))
}

func TestInitializeRejectsInvalidToken(t *testing.T) {
	t.Parallel()

	store := NewStateStoreAt(t.TempDir())
	require.NoError(t, store.SaveToken("tok-expired"))
	require.NoError(t, store.SaveUser(testUser()))

	mgr := NewManager(store)
	mgr.SetProvider(&stubProvider{
		currentUserFn: func() (models.User, error) {
			return models.User{}, errors.New("unauthorized")
		},
	})
	mgr.Initialize(context.Background())

	require.False(t, mgr.Loading())
	require.Equal(t, PhaseNone, mgr.SessionPhase())
	_, ok := mgr.User()
	require.False(t, ok)
	token, err := store.LoadToken()
	require.NoError(t, err)
	require.Empty(t, token)
	saved, err := store.LoadUser()
	require.NoError(t, err)
	require.Nil(t, saved)
}

func TestInitializeWithNoPersistedState(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager(t, &stubProvider{})
	mgr.Initialize(context.Background())

	require.False(t, mgr.Loading())
	require.Equal(t, PhaseNone, mgr.SessionPhase())
	_, ok := mgr.User()
	require.False(t, ok)
}

func TestUpdateBalanceTakesServerValue(t *testing.T) {
	t.Parallel()

	server := decimal.RequireFromString("45000.00")
	mgr, store := newTestManager(t, &stubProvider{
		loginFn: func(string, string) (backend.Credentials, error) {
			return backend.Credentials{User: testUser(), AccessToken: "tok"}, nil
		},
		updateBalanceFn: func(delta decimal.Decimal) (decimal.Decimal, error) {
			require.True(t, delta.Equal(decimal.RequireFromString("-750.50")))
			return server, nil
		},
	})
	require.True(t, mgr.Login(context.Background(), "a", "b").OK)

	res := mgr.UpdateBalance(context.Background(), decimal.RequireFromString("-750.50"))
	require.True(t, res.OK)

	got, ok := mgr.User()
	require.True(t, ok)
	require.True(t, got.Balance.Equal(server))
	saved, err := store.LoadUser()
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.True(t, saved.Balance.Equal(server))
}

func TestUpdateBalanceFailureKeepsState(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager(t, &stubProvider{
		loginFn: func(string, string) (backend.Credentials, error) {
			return backend.Credentials{User: testUser(), AccessToken: "tok"}, nil
		},
		updateBalanceFn: func(decimal.Decimal) (decimal.Decimal, error) {
			return decimal.Zero, errors.New("insufficient balance")
		},
	})
	require.True(t, mgr.Login(context.Background(), "a", "b").OK)

	res := mgr.UpdateBalance(context.Background(), decimal.NewFromInt(-1000000))
	require.False(t, res.OK)
	require.NotEmpty(t, res.Reason)

	got, ok := mgr.User()
	require.True(t, ok)
	require.True(t, got.Balance.Equal(testUser().Balance))
}

func TestRefreshUserDataOverwrites(t *testing.T) {
	t.Parallel()

	fresh := testUser()
	fresh.Name = "John Q Doe"
	mgr, store := newTestManager(t, &stubProvider{
		loginFn: func(string, string) (backend.Credentials, error) {
			return backend.Credentials{User: testUser(), AccessToken: "tok"}, nil
		},
		profileFn: func() (models.User, error) { return fresh, nil },
	})
	require.True(t, mgr.Login(context.Background(), "a", "b").OK)

	mgr.RefreshUserData(context.Background())

	got, _ := mgr.User()
	require.Equal(t, "John Q Doe", got.Name)
	saved, err := store.LoadUser()
	require.NoError(t, err)
	require.Equal(t, "John Q Doe", saved.Name)
}

func TestInvalidateActsAsUnauthorizedHook(t *testing.T) {
	t.Parallel()

	mgr, store := newTestManager(t, &stubProvider{
		loginFn: func(string, string) (backend.Credentials, error) {
			return backend.Credentials{User: testUser(), AccessToken: "tok"}, nil
		},
	})
	require.True(t, mgr.Login(context.Background(), "a", "b").OK)

	// wired as client.OnUnauthorized in main
	mgr.Invalidate()

	_, ok := mgr.User()
	require.False(t, ok)
	require.Empty(t, mgr.Token())
	token, err := store.LoadToken()
	require.NoError(t, err)
	require.Empty(t, token)
}
