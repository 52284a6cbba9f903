package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"worldmark/internal/web/templates/layout"
)

// LoginData carries the login page state
type LoginData struct {
	layout.PageData
	Username string
	Error    string
}

// RegisterData carries the registration page state
type RegisterData struct {
	layout.PageData
	Username    string
	Error       string
	FieldErrors map[string]string
}

// Login renders the login page
func Login(data LoginData) templ.Component {
	return layout.Page(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="panel auth">
<h2>Log in</h2>
`); err != nil {
			return err
		}
		if data.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>
`, templ.EscapeString(data.Error)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/auth/login">
<label>Username <input type="text" name="username" value="%s" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Log in</button>
</form>
<p>No account? <a href="/auth/register">Register</a></p>
</section>
`, templ.EscapeString(data.Username))
		return err
	}))
}

// Register renders the registration page
func Register(data RegisterData) templ.Component {
	return layout.Page(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="panel auth">
<h2>Register</h2>
`); err != nil {
			return err
		}
		if data.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="error">%s</p>
`, templ.EscapeString(data.Error)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="/auth/register">
<label>Username <input type="text" name="username" value="%s" required></label>
`, templ.EscapeString(data.Username)); err != nil {
			return err
		}
		if err := fieldError(w, data.FieldErrors, "username"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<label>Password <input type="password" name="password" required></label>
`); err != nil {
			return err
		}
		if err := fieldError(w, data.FieldErrors, "password"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<label>Confirm password <input type="password" name="password_confirm" required></label>
`); err != nil {
			return err
		}
		if err := fieldError(w, data.FieldErrors, "password_confirm"); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<button type="submit">Register</button>
</form>
</section>
`)
		return err
	}))
}

func fieldError(w io.Writer, fieldErrors map[string]string, field string) error {
	msg, ok := fieldErrors[field]
	if !ok {
		return nil
	}
	_, err := fmt.Fprintf(w, `<p class="field-error">%s</p>
`, templ.EscapeString(msg))
	return err
}
