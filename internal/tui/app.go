package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"securebank/internal/bank"
	"securebank/internal/config"
	"securebank/internal/database/repository"
	"securebank/internal/models"
	"securebank/internal/service"
	"securebank/internal/session"
)

// App ties together the screens over a single session manager. All backend
// access goes through the manager's provider; the screens never hold a token.
type App struct {
	ctx context.Context
	mgr *session.Manager
	cfg config.Config

	state      appState
	status     string
	currency   string
	dateFormat string

	// auth
	authTab       authTab
	authField     int
	loginEmail    string
	loginPassword string
	signupName    string
	signupEmail   string
	signupPhone   string
	signupPass    string
	otpStage      bool
	otpInput      string
	pendingSignup bank.SignupRequest

	// dashboard
	recent []models.Transaction

	// transactions
	history  []models.Transaction
	txFilter string // "" | credit | debit
	txCursor int

	// send money wizard
	sendStep    int
	sendField   int
	sendName    string
	sendAccount string
	sendPhone   string
	sendAmount  string
	sendDesc    string
	sendPIN     string
	contacts    []models.Contact

	// request money
	reqField    int
	reqName     string
	reqAmount   string
	reqDesc     string
	lastRequest *models.PaymentRequest

	// qr pay
	qrCursor      int
	qrEnteringPIN bool
	qrPIN         string

	// loans
	loans           []models.Loan
	loanCursor      int
	loanMode        loanMode
	loanField       int
	applyType       string
	applyAmount     string
	applyIncome     string
	applyEmployment string
	applyPurpose    string
	calcAmount      string
	calcRate        string
	calcMonths      string
	lastQuote       *bank.EMIQuote

	// investments
	investments  []models.Investment
	portfolio    *models.PortfolioSummary
	invCursor    int
	invMode      invMode
	invField     int
	newInvType   string
	newInvName   string
	newInvAmount string

	// profile
	profileEditing bool
	profileField   int
	editName       string
	editPhone      string

	statements *service.StatementService
}

type appState string

const (
	viewAuth         appState = "auth"
	viewDashboard    appState = "dashboard"
	viewTransactions appState = "transactions"
	viewSend         appState = "send"
	viewRequest      appState = "request"
	viewQR           appState = "qr"
	viewLoans        appState = "loans"
	viewInvestments  appState = "investments"
	viewProfile      appState = "profile"
)

type authTab string

const (
	tabLogin  authTab = "login"
	tabSignup authTab = "signup"
)

type loanMode string

const (
	loanList  loanMode = "list"
	loanApply loanMode = "apply"
	loanCalc  loanMode = "calculator"
)

type invMode string

const (
	invList   invMode = "list"
	invCreate invMode = "create"
)

func New(ctx context.Context, cfg config.Config, mgr *session.Manager) *App {
	return &App{
		ctx:        ctx,
		mgr:        mgr,
		cfg:        cfg,
		state:      viewAuth,
		authTab:    tabLogin,
		loanMode:   loanList,
		invMode:    invList,
		currency:   cfg.UI.CurrencySymbol,
		dateFormat: cfg.UI.DateFormat,
		statements: &service.StatementService{},
	}
}

func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		a.mgr.Initialize(a.ctx)
		return sessionReadyMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)
	case sessionReadyMsg:
		if _, ok := a.mgr.User(); ok {
			a.state = viewDashboard
			return a, a.loadRecent()
		}
		a.state = viewAuth
	case authOKMsg:
		a.resetAuthForm()
		a.state = viewDashboard
		a.status = ""
		return a, a.loadRecent()
	case loggedOutMsg:
		a.resetAuthForm()
		a.state = viewAuth
		a.status = "logged out"
	case recentMsg:
		a.recent = []models.Transaction(m)
	case historyMsg:
		a.history = []models.Transaction(m)
		if a.txCursor >= len(a.history) {
			a.txCursor = 0
		}
	case contactsMsg:
		a.contacts = []models.Contact(m)
	case loansMsg:
		a.loans = []models.Loan(m)
		if a.loanCursor >= len(a.loans) {
			a.loanCursor = 0
		}
	case investmentsMsg:
		a.investments = m.list
		summary := m.summary
		a.portfolio = &summary
		if a.invCursor >= len(a.investments) {
			a.invCursor = 0
		}
	case transferDoneMsg:
		// The receipt carries the server's balance; apply it before the
		// dashboard renders so it never shows the pre-transfer value.
		a.mgr.ApplyBalance(m.NewBalance)
		a.status = fmt.Sprintf("%s (new balance %s)", m.Message, FormatAmount(a.currency, m.NewBalance))
		a.state = viewDashboard
		return a, tea.Batch(a.refreshUser(), a.loadRecent())
	case paymentLinkMsg:
		pr := models.PaymentRequest(m)
		a.lastRequest = &pr
		a.status = "request created"
	case emiPaidMsg:
		a.mgr.ApplyBalance(m.NewBalance)
		a.status = fmt.Sprintf("%s (outstanding %s)", m.Message, FormatAmount(a.currency, m.RemainingAmount))
		return a, tea.Batch(a.refreshUser(), a.loadLoans())
	case quoteMsg:
		q := bank.EMIQuote(m)
		a.lastQuote = &q
	case loanAppliedMsg:
		a.status = fmt.Sprintf("%s (ref %s)", m.Message, m.ApplicationID)
		a.loanMode = loanList
	case investmentCreatedMsg:
		a.status = "investment created"
		a.invMode = invList
		return a, tea.Batch(a.refreshUser(), a.loadInvestments())
	case soldMsg:
		a.mgr.ApplyBalance(m.NewBalance)
		a.status = fmt.Sprintf("%s (received %s)", m.Message, FormatAmount(a.currency, m.AmountReceived))
		return a, tea.Batch(a.refreshUser(), a.loadInvestments())
	case profileSavedMsg:
		a.profileEditing = false
		a.status = "profile updated"
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
		if _, ok := a.mgr.User(); !ok && a.state != viewAuth {
			// The 401 hook cleared the session out from under us.
			a.resetAuthForm()
			a.state = viewAuth
			a.status = "session expired, sign in again"
		}
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	switch a.state {
	case viewAuth:
		return a.handleAuthKey(m)
	case viewTransactions:
		return a.handleTransactionsKey(m)
	case viewSend:
		return a.handleSendKey(m)
	case viewRequest:
		return a.handleRequestKey(m)
	case viewQR:
		return a.handleQRKey(m)
	case viewLoans:
		return a.handleLoansKey(m)
	case viewInvestments:
		return a.handleInvestmentsKey(m)
	case viewProfile:
		return a.handleProfileKey(m)
	default:
		return a.handleDashboardKey(m)
	}
}

// handleNavKey services the shared navigation keys on non-input screens.
func (a *App) handleNavKey(key string) (tea.Cmd, bool) {
	switch key {
	case "q":
		return tea.Quit, true
	case "d":
		a.state = viewDashboard
		a.status = ""
		return a.loadRecent(), true
	case "t":
		a.state = viewTransactions
		a.status = ""
		return a.loadHistory(), true
	case "s":
		a.resetSendForm()
		a.state = viewSend
		a.status = ""
		return a.loadContacts(), true
	case "r":
		a.resetRequestForm()
		a.state = viewRequest
		a.status = ""
		return nil, true
	case "c":
		a.state = viewQR
		a.qrCursor, a.qrPIN, a.qrEnteringPIN = 0, "", false
		a.status = ""
		return nil, true
	case "l":
		a.state = viewLoans
		a.loanMode = loanList
		a.status = ""
		return a.loadLoans(), true
	case "v":
		a.state = viewInvestments
		a.invMode = invList
		a.status = ""
		return a.loadInvestments(), true
	case "p":
		a.state = viewProfile
		a.profileEditing = false
		a.status = ""
		return nil, true
	}
	return nil, false
}

func (a *App) View() string {
	if a.mgr.Loading() {
		return "loading session..."
	}
	switch a.state {
	case viewAuth:
		return a.renderAuth()
	case viewTransactions:
		return a.renderTransactions()
	case viewSend:
		return a.renderSend()
	case viewRequest:
		return a.renderRequest()
	case viewQR:
		return a.renderQR()
	case viewLoans:
		return a.renderLoans()
	case viewInvestments:
		return a.renderInvestments()
	case viewProfile:
		return a.renderProfile()
	default:
		return a.renderDashboard()
	}
}

// commands
func (a *App) loadRecent() tea.Cmd {
	return func() tea.Msg {
		list, err := a.mgr.Provider().Recent(a.ctx, 5)
		if err != nil {
			return errMsg{err}
		}
		return recentMsg(list)
	}
}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		list, err := a.mgr.Provider().History(a.ctx, repository.TransactionFilters{Type: a.txFilter})
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(list)
	}
}

func (a *App) loadContacts() tea.Cmd {
	return func() tea.Msg {
		list, err := a.mgr.Provider().Contacts(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return contactsMsg(list)
	}
}

func (a *App) loadLoans() tea.Cmd {
	return func() tea.Msg {
		list, err := a.mgr.Provider().Loans(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return loansMsg(list)
	}
}

func (a *App) loadInvestments() tea.Cmd {
	return func() tea.Msg {
		list, err := a.mgr.Provider().Investments(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		summary, err := a.mgr.Provider().Portfolio(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return investmentsMsg{list: list, summary: summary}
	}
}

func (a *App) refreshUser() tea.Cmd {
	return func() tea.Msg {
		a.mgr.RefreshUserData(a.ctx)
		return nil
	}
}

// text input helper shared by every form field
func editField(value string, m tea.KeyMsg) (string, bool) {
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(value) > 0 {
			return value[:len(value)-1], true
		}
		return value, true
	case tea.KeySpace:
		return value + " ", true
	case tea.KeyRunes:
		return value + string(m.Runes), true
	}
	return value, false
}

// messages
type sessionReadyMsg struct{}

type authOKMsg struct{}

type loggedOutMsg struct{}

type recentMsg []models.Transaction

type historyMsg []models.Transaction

type contactsMsg []models.Contact

type loansMsg []models.Loan

type investmentsMsg struct {
	list    []models.Investment
	summary models.PortfolioSummary
}

type transferDoneMsg bank.TransferReceipt

type paymentLinkMsg models.PaymentRequest

type emiPaidMsg bank.EMIReceipt

type quoteMsg bank.EMIQuote

type loanAppliedMsg bank.LoanApplicationReceipt

type investmentCreatedMsg models.Investment

type soldMsg bank.SaleReceipt

type profileSavedMsg models.User

type statusMsg string

type errMsg struct{ error }

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	activeStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)
