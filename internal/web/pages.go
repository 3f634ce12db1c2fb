package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	pitchdeck "github.com/alnah/go-pitchdeck"
	"github.com/alnah/go-pitchdeck/internal/logger"
	"github.com/alnah/go-pitchdeck/internal/session"
)

// Page views.
const (
	viewForm    = "form"
	viewLoading = "loading"
	viewPreview = "preview"
)

type pageView struct {
	View      string
	Notice    string
	Input     pitchdeck.PitchInput
	Preview   *previewView
	AppStyle  template.CSS
	DeckStyle template.CSS
}

type previewView struct {
	StartupName string
	Exporting   bool
	Current     template.HTML
	HasPrev     bool
	HasNext     bool
	Thumbs      []thumbView
}

type thumbView struct {
	Index  int
	Number int
	Title  string
	Active bool
}

// buildView maps a session state to the page model.
func (s *Server) buildView(st session.State, notice string) (pageView, error) {
	v := pageView{
		View:      viewForm,
		Notice:    notice,
		Input:     st.Input,
		AppStyle:  s.appStyle,
		DeckStyle: s.renderer.Style(),
	}

	switch {
	case st.HasDeck():
		cur, _ := st.Current()
		surface, err := s.renderer.RenderSlide(cur, st.Cursor, st.Total())
		if err != nil {
			return pageView{}, err
		}

		p := &previewView{
			StartupName: st.Deck.StartupName,
			Exporting:   st.Exporting,
			Current:     surface.HTML,
			HasPrev:     st.Cursor > 0,
			HasNext:     st.Cursor < st.Total()-1,
		}
		for i, slide := range st.Deck.Slides {
			p.Thumbs = append(p.Thumbs, thumbView{
				Index:  i,
				Number: i + 1,
				Title:  slide.Title,
				Active: i == st.Cursor,
			})
		}
		v.View = viewPreview
		v.Preview = p
	case st.Loading:
		v.View = viewLoading
	}
	return v, nil
}

// renderPage writes the page for v with the given status.
func (s *Server) renderPage(c *gin.Context, status int, v pageView) {
	var buf bytes.Buffer
	if err := s.page.ExecuteTemplate(&buf, appTemplate, v); err != nil {
		logger.FromContext(c.Request.Context(), s.logger).Error("page render failed", "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
