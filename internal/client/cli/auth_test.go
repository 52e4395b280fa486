package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/placeholder/internal/client/client"
)

func stubInputs(t *testing.T, username string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeAPI struct {
	loginUser string
	loginPass []byte
	loginTok  string
	loginErr  error

	reg    client.Registration
	regErr error

	meToken string
	meUser  *client.User
	meErr   error
}

func (f *fakeAPI) Login(_ context.Context, user string, pass []byte) (string, error) {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	return f.loginTok, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, r client.Registration) (*client.User, error) {
	f.reg = r
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &client.User{ID: "42", Username: r.Username, Email: r.Email}, nil
}

func (f *fakeAPI) Me(_ context.Context, token string) (*client.User, error) {
	f.meToken = token
	return f.meUser, f.meErr
}

func newTestApp(f *fakeAPI) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{api: f, reader: bufio.NewReader(strings.NewReader("")), out: &out}, &out
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAPI{loginTok: "tok.en.sig"}
	a, out := newTestApp(f)

	pw := []byte("secret")
	restore := stubInputs(t, "prompted", pw)
	defer restore()

	if err := a.Login(context.Background(), "alice"); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginUser != "alice" {
		t.Fatalf("Login user mismatch: %q", f.loginUser)
	}
	if string(f.loginPass) != "secret" {
		t.Fatalf("Login pass mismatch: %q", string(f.loginPass))
	}
	if !bytes.Equal(pw, make([]byte, len(pw))) {
		t.Fatalf("password not wiped: %q", pw)
	}
	if !strings.Contains(out.String(), "tok.en.sig") {
		t.Fatalf("token not printed: %q", out.String())
	}
}

func TestLogin_PromptsForUsername(t *testing.T) {
	f := &fakeAPI{loginTok: "t"}
	a, _ := newTestApp(f)

	restore := stubInputs(t, "prompted", []byte("pw"))
	defer restore()

	if err := a.Login(context.Background(), ""); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginUser != "prompted" {
		t.Fatalf("Login user mismatch: %q", f.loginUser)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := &fakeAPI{loginErr: client.ErrInvalidCredentials}
	a, out := newTestApp(f)

	restore := stubInputs(t, "", []byte("pw"))
	defer restore()

	err := a.Login(context.Background(), "alice")
	if !errors.Is(err, client.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestLogin_PasswordReadError(t *testing.T) {
	f := &fakeAPI{}
	a, _ := newTestApp(f)

	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return nil, errors.New("no tty") }
	defer func() { getPassword = orig }()

	if err := a.Login(context.Background(), "alice"); err == nil {
		t.Fatal("expected error")
	}
	if f.loginUser != "" {
		t.Fatal("api must not be called without a password")
	}
}

func TestRegister_Success(t *testing.T) {
	f := &fakeAPI{}
	a, out := newTestApp(f)

	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	if err := a.Register(context.Background(), client.Registration{Username: "alice"}); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if f.reg.Username != "alice" || f.reg.Email != "alice@example.org" {
		t.Fatalf("Register mismatch: %+v", f.reg)
	}
	if f.reg.Password != "secret" {
		t.Fatalf("Register pass mismatch: %q", f.reg.Password)
	}
	if !strings.Contains(out.String(), "id=42") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRegister_ErrorPropagates(t *testing.T) {
	f := &fakeAPI{regErr: client.ErrRejected}
	a, _ := newTestApp(f)

	restore := stubInputs(t, "x", []byte("pw"))
	defer restore()

	err := a.Register(context.Background(), client.Registration{Username: "u", Email: "e"})
	if !errors.Is(err, client.ErrRejected) {
		t.Fatalf("want ErrRejected, got %v", err)
	}
}

func TestWhoAmI(t *testing.T) {
	f := &fakeAPI{meUser: &client.User{ID: "1", Username: "alice", Email: "a@example.com"}}
	a, out := newTestApp(f)

	if err := a.WhoAmI(context.Background(), "tok"); err != nil {
		t.Fatalf("WhoAmI err: %v", err)
	}
	if f.meToken != "tok" {
		t.Fatalf("token mismatch: %q", f.meToken)
	}
	if !strings.Contains(out.String(), "alice <a@example.com>") {
		t.Fatalf("unexpected output: %q", out.String())
	}

	if err := a.WhoAmI(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty token")
	}

	f.meErr = client.ErrUnauthorized
	if err := a.WhoAmI(context.Background(), "tok"); !errors.Is(err, client.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}
