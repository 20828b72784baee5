package portal

import "regexp"

var (
	amountRe    = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	numericRe   = regexp.MustCompile(`^\d+$`)
	swiftCodeRe = regexp.MustCompile(`^[A-Z0-9]{8,11}$`)
	fullNameRe  = regexp.MustCompile(`^[A-Za-z ]+$`)
	idNumberRe  = regexp.MustCompile(`^\d{13}$`)
)

// PaymentForm holds the raw string fields of the international payment form.
// No trimming is performed beyond what the rules themselves imply.
type PaymentForm struct {
	Amount           string
	Currency         string
	Provider         string
	RecipientAccount string
	SwiftCode        string
}

var paymentRules = RuleSet{
	{Field: "amount", Check: matches(amountRe), Message: "Enter a valid amount"},
	{Field: "currency", Check: oneOfUpper("USD", "EUR", "ZAR"), Message: "Currency must be USD, EUR, or ZAR"},
	{Field: "provider", Check: oneOfUpper("SWIFT"), Message: "Provider must be SWIFT"},
	{Field: "recipientAccount", Check: matches(numericRe), Message: "Recipient account must be numeric"},
	{Field: "swiftCode", Check: matchesUpper(swiftCodeRe), Message: "SWIFT Code must be 8-11 uppercase alphanumeric characters"},
}

// Validate checks every payment field and returns the failures. It is a pure
// function of the form's contents.
func (f PaymentForm) Validate() Errors {
	return paymentRules.Validate(map[string]string{
		"amount":           f.Amount,
		"currency":         f.Currency,
		"provider":         f.Provider,
		"recipientAccount": f.RecipientAccount,
		"swiftCode":        f.SwiftCode,
	})
}

// RegisterForm holds the raw string fields of the customer registration form.
type RegisterForm struct {
	FullName      string
	IDNumber      string
	AccountNumber string
	Password      string
}

var registerRules = RuleSet{
	{Field: "fullName", Check: matches(fullNameRe), Message: "Only letters and spaces allowed"},
	{Field: "idNumber", Check: matches(idNumberRe), Message: "ID must be 13 digits"},
	{Field: "accountNumber", Check: matches(numericRe), Message: "Account number must be numeric"},
	{Field: "password", Check: strongPassword, Message: "Password must have min 8 chars, 1 uppercase, 1 lowercase, 1 number"},
}

func (f RegisterForm) Validate() Errors {
	return registerRules.Validate(map[string]string{
		"fullName":      f.FullName,
		"idNumber":      f.IDNumber,
		"accountNumber": f.AccountNumber,
		"password":      f.Password,
	})
}

// LoginForm holds the raw string fields of the login form.
type LoginForm struct {
	AccountNumber string
	Password      string
}

var loginRules = RuleSet{
	{Field: "accountNumber", Check: matches(numericRe), Message: "Account number must be numeric"},
	{Field: "password", Check: notEmpty, Message: "Password is required"},
}

func (f LoginForm) Validate() Errors {
	return loginRules.Validate(map[string]string{
		"accountNumber": f.AccountNumber,
		"password":      f.Password,
	})
}

// EmployeeForm holds the fields of the admin's create-employee form.
type EmployeeForm struct {
	Username string
	FullName string
	Password string
}

var employeeRules = RuleSet{
	{Field: "username", Check: notEmpty, Message: "Username is required"},
	{Field: "fullName", Check: notEmpty, Message: "Full name is required"},
	{Field: "password", Check: notEmpty, Message: "Password is required"},
}

func (f EmployeeForm) Validate() Errors {
	return employeeRules.Validate(map[string]string{
		"username": f.Username,
		"fullName": f.FullName,
		"password": f.Password,
	})
}

// Decision is the status an employee applies to a pending payment.
type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionDenied   Decision = "Denied"
)

// Valid reports whether the decision is one of the two legal review outcomes.
func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionDenied
}
