// Package portal is the Go client for the PayPortal backend. It reproduces
// the payment submission pipeline of the browser portals: synchronous
// field validation, input sanitization, a single authenticated request, and
// classification of the response into a created record or a user-facing
// failure message.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/payportal/payportal/pkg/sanitize"
)

// Client talks to one PayPortal backend. The zero value is not usable; create
// it with NewClient.
type Client struct {
	baseURL string
	httpc   *http.Client
	session SessionStore
	log     zerolog.Logger

	// submitting is the in-flight latch: while a payment submission is
	// outstanding, further submissions are rejected without a network call.
	submitting atomic.Bool

	payments  listState[Payment]
	pending   listState[Payment]
	history   listState[Payment]
	employees listState[User]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithSessionStore replaces the default in-memory session store.
func WithSessionStore(s SessionStore) Option {
	return func(c *Client) { c.session = s }
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		session: NewMemoryStore(),
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Session returns the current session, if any.
func (c *Client) Session() (Session, bool) {
	return c.session.Get()
}

// --- Auth ---

type registerPayload struct {
	FullName      string `json:"fullName"`
	IDNumber      string `json:"idNumber"`
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

type loginPayload struct {
	AccountNumber string `json:"accountNumber,omitempty"`
	Username      string `json:"username,omitempty"`
	Password      string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Register validates the registration form, strips symbol characters from the
// identity fields and creates an account. On success the returned session is
// persisted in the session store.
func (c *Client) Register(ctx context.Context, form RegisterForm) (Session, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return Session{}, errs
	}

	payload := registerPayload{
		FullName:      sanitize.StripSymbols(form.FullName),
		IDNumber:      sanitize.StripSymbols(form.IDNumber),
		AccountNumber: sanitize.StripSymbols(form.AccountNumber),
		Password:      form.Password,
	}
	var res authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", payload, &res, "Registration failed"); err != nil {
		return Session{}, err
	}
	return c.storeSession(res)
}

// Login validates the login form and authenticates. On success the returned
// session is persisted in the session store.
func (c *Client) Login(ctx context.Context, form LoginForm) (Session, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return Session{}, errs
	}

	payload := loginPayload{
		AccountNumber: sanitize.StripSymbols(form.AccountNumber),
		Password:      form.Password,
	}
	var res authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &res, "Login failed"); err != nil {
		return Session{}, err
	}
	return c.storeSession(res)
}

// LoginEmployee authenticates with a username instead of an account number.
func (c *Client) LoginEmployee(ctx context.Context, username, password string) (Session, error) {
	errs := Errors{}
	if username == "" {
		errs["username"] = "Username is required"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) > 0 {
		return Session{}, errs
	}

	var res authResponse
	payload := loginPayload{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &res, "Login failed"); err != nil {
		return Session{}, err
	}
	return c.storeSession(res)
}

func (c *Client) storeSession(res authResponse) (Session, error) {
	sess := Session{Token: res.Token, User: res.User, Role: res.User.Role}
	if err := c.session.Set(sess); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Logout clears the stored session and tells the backend to revoke the token.
// The local session is cleared even when the revocation call fails.
func (c *Client) Logout(ctx context.Context) error {
	_, ok := c.session.Get()
	if !ok {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, "Logout failed")
	if clearErr := c.session.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// --- Payments ---

type paymentPayload struct {
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	Provider         string  `json:"provider"`
	RecipientAccount string  `json:"recipientAccount"`
	SwiftCode        string  `json:"swiftCode"`
}

// SubmitPayment validates the form, and when every field passes, sanitizes
// the string fields and issues exactly one authenticated POST /payments.
// Validation failures are returned as an Errors map and never reach the
// network. While a submission is in flight, concurrent calls fail with
// ErrSubmissionInFlight; the latch is released on every return path.
func (c *Client) SubmitPayment(ctx context.Context, form PaymentForm) (*Payment, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, errs
	}

	if !c.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.submitting.Store(false)

	// The amount was vetted against ^\d+(\.\d{1,2})?$ above, so parsing
	// cannot fail; the decimal point is deliberately left intact.
	amount, err := strconv.ParseFloat(form.Amount, 64)
	if err != nil {
		return nil, Errors{"amount": "Enter a valid amount"}
	}

	payload := paymentPayload{
		Amount:           amount,
		Currency:         sanitize.HTML(form.Currency),
		Provider:         sanitize.HTML(form.Provider),
		RecipientAccount: sanitize.HTML(form.RecipientAccount),
		SwiftCode:        sanitize.HTML(form.SwiftCode),
	}

	c.log.Debug().Float64("amount", payload.Amount).Str("currency", payload.Currency).Msg("submitting payment")

	var created Payment
	if err := c.doAuthed(ctx, http.MethodPost, "/payments", payload, &created, "Payment creation failed"); err != nil {
		return nil, err
	}
	return &created, nil
}

// Payments fetches the caller's own payments. Each record is passed through
// the HTML sanitizer; stale responses never overwrite fresher ones.
func (c *Client) Payments(ctx context.Context) ([]Payment, error) {
	return c.fetchPayments(ctx, &c.payments, "/payments", "Could not fetch payments")
}

// PendingPayments fetches the payments awaiting review.
func (c *Client) PendingPayments(ctx context.Context) ([]Payment, error) {
	return c.fetchPayments(ctx, &c.pending, "/employee/payments/pending", "Failed to fetch payments")
}

// PaymentHistory fetches the processed (approved or denied) payments.
func (c *Client) PaymentHistory(ctx context.Context) ([]Payment, error) {
	return c.fetchPayments(ctx, &c.history, "/employee/payments/history", "Failed to fetch payment history")
}

func (c *Client) fetchPayments(ctx context.Context, state *listState[Payment], path, fallback string) ([]Payment, error) {
	seq := state.begin()

	var fetched []Payment
	if err := c.doAuthed(ctx, http.MethodGet, path, nil, &fetched, fallback); err != nil {
		return nil, err
	}
	for i := range fetched {
		fetched[i] = fetched[i].sanitized()
	}
	if !state.commit(seq, fetched) {
		c.log.Debug().Str("path", path).Uint64("seq", seq).Msg("discarding stale list response")
	}
	return state.snapshot(), nil
}

// DecidePayment applies an employee's review decision to a pending payment.
func (c *Client) DecidePayment(ctx context.Context, paymentID string, decision Decision) (*Payment, error) {
	if !decision.Valid() {
		return nil, Errors{"status": "Status must be Approved or Denied"}
	}

	payload := struct {
		Status string `json:"status"`
	}{Status: string(decision)}

	var updated Payment
	if err := c.doAuthed(ctx, http.MethodPut, "/employee/payments/"+paymentID, payload, &updated, "Failed to update payment"); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ReviewQueue is the combined employee dashboard view.
type ReviewQueue struct {
	Pending []Payment
	History []Payment
}

// Snapshot fetches the pending queue and the processed history concurrently.
func (c *Client) Snapshot(ctx context.Context) (*ReviewQueue, error) {
	var q ReviewQueue
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := c.PendingPayments(gCtx)
		q.Pending = p
		return err
	})
	g.Go(func() error {
		h, err := c.PaymentHistory(gCtx)
		q.History = h
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &q, nil
}

// --- Employee administration ---

// Employees fetches the employee accounts.
func (c *Client) Employees(ctx context.Context) ([]User, error) {
	seq := c.employees.begin()

	var fetched []User
	if err := c.doAuthed(ctx, http.MethodGet, "/admin/employees", nil, &fetched, "Failed to fetch employees"); err != nil {
		return nil, err
	}
	c.employees.commit(seq, fetched)
	return c.employees.snapshot(), nil
}

// CreateEmployee validates the form and provisions an employee account.
func (c *Client) CreateEmployee(ctx context.Context, form EmployeeForm) (*User, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, errs
	}

	payload := struct {
		Username string `json:"username"`
		FullName string `json:"fullName"`
		Password string `json:"password"`
	}{form.Username, form.FullName, form.Password}

	var created User
	if err := c.doAuthed(ctx, http.MethodPost, "/admin/employees", payload, &created, "Failed to create employee"); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteEmployee removes an employee account.
func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.doAuthed(ctx, http.MethodDelete, "/admin/employees/"+id, nil, nil, "Failed to delete employee")
}

// --- Transport ---

// doAuthed is do for endpoints that demand a bearer token. Without a stored
// session it fails with ErrNotAuthenticated before any network traffic.
func (c *Client) doAuthed(ctx context.Context, method, path string, body, out any, fallback string) error {
	if sess, ok := c.session.Get(); !ok || sess.Token == "" {
		return ErrNotAuthenticated
	}
	return c.do(ctx, method, path, body, out, fallback)
}

// do issues one JSON request. A 2xx response decodes into out; any other
// outcome becomes an *APIError whose message is resolved from the response
// body's msg field, then its error field, then fallback. No retry is
// attempted.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if sess, ok := c.session.Get(); ok && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &APIError{Message: fallback, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: fallback, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data, fallback)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Status: resp.StatusCode, Message: fallback, Err: err}
		}
	}
	return nil
}

// errorMessage resolves the user-facing message from a structured error body:
// msg first, then error, then the fallback.
func errorMessage(body []byte, fallback string) string {
	var parsed struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Msg != "" {
			return parsed.Msg
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return fallback
}
