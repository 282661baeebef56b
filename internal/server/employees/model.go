package employees

type Employee struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	Department string  `json:"department,omitempty"`
	Position   string  `json:"position,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
	HireDate   string  `json:"hireDate,omitempty"`
}
