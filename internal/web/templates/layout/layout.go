// Package layout holds the shared page chrome. Components are built
// with templ.ComponentFunc so the package stays plain Go.
package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot notification carried via cookie
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData carries the fields every page needs
type PageData struct {
	Title    string
	Username string // empty when not logged in
	Flash    *FlashMessage
}

// Page wraps content in the base HTML document: head, nav, flash
// banner, footer.
func Page(data PageData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - Worldmark</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<nav class="topnav">
<a href="/" class="brand">Worldmark</a>
<div class="nav-user">`, templ.EscapeString(data.Title)); err != nil {
			return err
		}

		if data.Username != "" {
			if _, err := fmt.Fprintf(w, `<span class="username">%s</span>
<form method="post" action="/auth/logout"><button type="submit">Log out</button></form>`,
				templ.EscapeString(data.Username)); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<a href="/auth/login">Log in</a>
<a href="/auth/register">Register</a>`); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</div>
</nav>
`); err != nil {
			return err
		}

		if data.Flash != nil {
			if _, err := fmt.Fprintf(w, `<div class="flash flash-%s">%s</div>
`, templ.EscapeString(data.Flash.Type), templ.EscapeString(data.Flash.Message)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<main>
`); err != nil {
			return err
		}

		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</main>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="/static/map.js"></script>
</body>
</html>
`)
		return err
	})
}
