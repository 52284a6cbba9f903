package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"worldmark/internal/geo"
	"worldmark/internal/model"
	"worldmark/internal/palette"
	"worldmark/internal/services/mapview"
	"worldmark/internal/web/templates/layout"
)

// HomeData carries everything the map page renders
type HomeData struct {
	layout.PageData

	Legend   []mapview.LegendEntry
	Selected model.ParticipantID
	Stats    mapview.Stats
	Overlaps []mapview.Overlap

	Countries []geo.Country
	Visited   map[model.CountryCode]struct{}

	Colours            []palette.Colour
	DefaultColourIndex int
}

// Home renders the map page
func Home(data HomeData) templ.Component {
	return layout.Page(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="map" class="worldmap" data-source="/api/map"></div>
<section class="panel legend">
<h2>Participants</h2>
`); err != nil {
			return err
		}

		if len(data.Legend) == 0 {
			if _, err := io.WriteString(w, `<p class="empty">No participants yet. Add one to get started.</p>
`); err != nil {
				return err
			}
		}
		for _, entry := range data.Legend {
			selected := ""
			if entry.ID == data.Selected {
				selected = ` class="selected"`
			}
			if _, err := fmt.Fprintf(w, `<div%s>
<span class="swatch" style="background:%s"></span>
<a href="/?participant=%s">%s</a>
<span class="muted">%s, %d countries</span>
</div>
`, selected,
				templ.EscapeString(entry.Colour),
				templ.EscapeString(string(entry.ID)),
				templ.EscapeString(string(entry.ID)),
				templ.EscapeString(entry.ColourName),
				entry.VisitedCount); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<form method="post" action="/participants" class="add-participant">
<input type="text" name="id" placeholder="Name" required>
<select name="colour">
`); err != nil {
			return err
		}
		for i, c := range data.Colours {
			sel := ""
			if i == data.DefaultColourIndex {
				sel = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s (%s)</option>
`, templ.EscapeString(c.Hex), sel, templ.EscapeString(c.Name), templ.EscapeString(c.Hex)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select>
<button type="submit">Add participant</button>
</form>
</section>
`); err != nil {
			return err
		}

		if data.Selected != "" {
			if err := selectedPanel(data).Render(ctx, w); err != nil {
				return err
			}
		}

		if err := overlapsPanel(data.Overlaps).Render(ctx, w); err != nil {
			return err
		}

		return storePanel().Render(ctx, w)
	}))
}

// selectedPanel renders the stats and visit editor for the selected
// participant.
func selectedPanel(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := templ.EscapeString(string(data.Selected))
		if _, err := fmt.Fprintf(w, `<section class="panel selected-participant">
<h2>%s</h2>
<p class="stats">%d of %d countries visited (%.1f%%)</p>
<form method="post" action="/participants/%s/delete" class="inline"><button type="submit">Delete</button></form>
<form method="post" action="/participants/%s/visits/clear" class="inline"><button type="submit">Clear visits</button></form>
<form method="post" action="/participants/%s/visits" class="visits">
<fieldset>
<legend>Visited countries</legend>
`, id, data.Stats.Visited, data.Stats.TotalCountries, data.Stats.Percentage, id, id, id); err != nil {
			return err
		}

		for _, country := range data.Countries {
			checked := ""
			if _, ok := data.Visited[country.Code]; ok {
				checked = " checked"
			}
			if _, err := fmt.Fprintf(w, `<label><input type="checkbox" name="codes" value="%s"%s> %s <span class="muted">%s</span></label>
`, templ.EscapeString(string(country.Code)), checked,
				templ.EscapeString(country.Name),
				templ.EscapeString(string(country.Code))); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</fieldset>
<button type="submit">Save visits</button>
</form>
</section>
`)
		return err
	})
}

func overlapsPanel(overlaps []mapview.Overlap) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(overlaps) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, `<section class="panel overlaps">
<h2>Shared countries</h2>
<table>
<thead><tr><th>Country</th><th>Code</th><th>Visitors</th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		for _, o := range overlaps {
			visitors := ""
			for i, v := range o.Visitors {
				if i > 0 {
					visitors += ", "
				}
				visitors += string(v)
			}
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td></tr>
`, templ.EscapeString(o.Name), templ.EscapeString(string(o.Code)), templ.EscapeString(visitors)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody>
</table>
</section>
`)
		return err
	})
}

func storePanel() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="panel store">
<h2>Map file</h2>
<form method="post" action="/store/new" class="inline"><button type="submit">New map</button></form>
<a href="/store/download" class="button">Download map</a>
<form method="post" action="/store/upload" enctype="multipart/form-data" class="inline">
<input type="file" name="store" accept=".db" required>
<button type="submit">Load map</button>
</form>
</section>
`)
		return err
	})
}
