package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Address struct {
	Street string
	Zip    string
	City   string
}

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Address      Address
	CreatedAt    time.Time
}

type MenuItem struct {
	ID          string
	Title       string
	Description string
	Price       float64
}

type Campaign struct {
	ID       string
	Title    string
	Products []string
	Price    float64
}

// Menu is the cacheable form of the whole menu listing.
type Menu []MenuItem

// TokenClaims is what a verified access token asserts about its bearer.
type TokenClaims struct {
	UserID string
	Role   string
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductExists      = errors.New("product already exists")
)

func (m Menu) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Menu) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(m)
}

func init() {
	gob.Register(Menu{})
	gob.Register(MenuItem{})
}
