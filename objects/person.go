package objects

import (
	"fmt"
	"io"

	"github.com/javanhut/muninn/codec"
)

// Person is an author or committer identity: a name, an email address and
// the date of the action. Wire form: "<name> <<email>> <date>". Name and
// email carry arbitrary bytes except the " <" and "> " sentinels; no email
// syntax validation is done.
type Person struct {
	Name  string
	Email string
	Date  Date
}

// NewPerson builds a Person.
func NewPerson(name, email string, date Date) Person {
	return Person{Name: name, Email: email, Date: date}
}

// DecodePerson reads a person from the front of b.
func DecodePerson(b []byte) (Person, []byte, error) {
	name, b, err := codec.Until(b, " <")
	if err != nil {
		return Person{}, nil, fmt.Errorf("person name: %w", err)
	}
	email, b, err := codec.Until(b, "> ")
	if err != nil {
		return Person{}, nil, fmt.Errorf("person email: %w", err)
	}
	date, b, err := DecodeDate(b)
	if err != nil {
		return Person{}, nil, err
	}
	return Person{Name: string(name), Email: string(email), Date: date}, b, nil
}

// Decode implements codec.Decoder.
func (p *Person) Decode(b []byte) ([]byte, error) {
	v, rest, err := DecodePerson(b)
	if err != nil {
		return nil, err
	}
	*p = v
	return rest, nil
}

// String renders the wire form.
func (p Person) String() string {
	return fmt.Sprintf("%s <%s> %s", p.Name, p.Email, p.Date)
}

// Encode implements codec.Encoder.
func (p Person) Encode(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "%s <%s> ", p.Name, p.Email)
	if err != nil {
		return n, err
	}
	m, err := p.Date.Encode(w)
	return n + m, err
}

// EncodedSize implements codec.Encoder.
func (p Person) EncodedSize() int {
	return len(p.Name) + len(p.Email) + 4 + p.Date.EncodedSize()
}
