package web

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	pitchdeck "github.com/alnah/go-pitchdeck"
	"github.com/alnah/go-pitchdeck/internal/logger"
	"github.com/alnah/go-pitchdeck/internal/session"
)

// sessionID returns the caller's session ID, issuing a cookie if needed.
func (s *Server) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && session.ValidID(id) {
		return id
	}
	id := session.NewID()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}

func backToIndex(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, context.Canceled):
		return resultCanceled
	default:
		return resultError
	}
}

func attachment(c *gin.Context, doc *pitchdeck.Document) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": doc.Filename,
	}))
	c.Data(http.StatusOK, "application/pdf", doc.PDF)
}

// ---------------------------------------------------------------------------
// Pages
// ---------------------------------------------------------------------------

func (s *Server) handleIndex(c *gin.Context) {
	id := s.sessionID(c)
	st, notice := s.store.TakeNotice(id)

	v, err := s.buildView(st, notice)
	if err != nil {
		logger.FromContext(c.Request.Context(), s.logger).Error("preview render failed", "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	s.renderPage(c, http.StatusOK, v)
}

func (s *Server) handleGenerate(c *gin.Context) {
	id := s.sessionID(c)
	log := logger.FromContext(c.Request.Context(), s.logger)

	var in pitchdeck.PitchInput
	if err := c.ShouldBind(&in); err != nil {
		c.String(http.StatusBadRequest, "malformed form")
		return
	}
	if err := in.Validate(); err != nil {
		v, _ := s.buildView(session.State{Input: in}, err.Error())
		s.renderPage(c, http.StatusBadRequest, v)
		return
	}

	ctx, seq := s.store.BeginGeneration(s.background(), id, in)
	log.Info("generation started", "startup", in.StartupName, "seq", seq)

	s.wg.Add(1)
	go s.generate(logger.WithRequestID(ctx, logger.RequestID(c.Request.Context())), id, seq, in)

	backToIndex(c)
}

// generate runs one generation in the background and records the outcome.
func (s *Server) generate(ctx context.Context, id string, seq uint64, in pitchdeck.PitchInput) {
	defer s.wg.Done()
	log := logger.FromContext(ctx, s.logger)

	start := time.Now()
	deck, err := s.gen.GenerateDeck(ctx, in)
	s.metrics.generations.WithLabelValues(resultOf(err)).Inc()
	s.metrics.generationTime.Observe(time.Since(start).Seconds())

	if err != nil {
		log.Warn("generation failed", "seq", seq, "error", err)
	} else {
		log.Info("generation finished", "seq", seq, "slides", deck.Len(), "duration", time.Since(start))
	}
	s.store.FinishGeneration(id, seq, deck, err)
}

func navigateTo(c *gin.Context) (session.Event, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return nil, false
	}
	return session.NavigateTo{Index: i}, true
}

func (s *Server) handleNavigate(event func(*gin.Context) (session.Event, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ev, ok := event(c)
		if !ok {
			c.String(http.StatusBadRequest, "invalid slide index")
			return
		}
		s.store.Apply(s.sessionID(c), ev)
		backToIndex(c)
	}
}

func (s *Server) handleExport(c *gin.Context) {
	id := s.sessionID(c)
	log := logger.FromContext(c.Request.Context(), s.logger)

	st, ok := s.store.StartExport(id)
	if !ok {
		backToIndex(c)
		return
	}

	doc, err := s.export(c.Request.Context(), st.Deck)
	if err != nil {
		log.Warn("export failed", "startup", st.Deck.StartupName, "error", err)
		s.store.Apply(id, session.ExportFailed{Err: err})
		backToIndex(c)
		return
	}

	s.store.Apply(id, session.ExportSucceeded{})
	log.Info("export finished", "file", doc.Filename, "pages", doc.Pages)
	attachment(c, doc)
}

func (s *Server) export(ctx context.Context, deck *pitchdeck.GeneratedDeck) (*pitchdeck.Document, error) {
	start := time.Now()
	doc, err := s.exp.ExportDeck(ctx, deck)
	s.metrics.exports.WithLabelValues(resultOf(err)).Inc()
	s.metrics.exportTime.Observe(time.Since(start).Seconds())
	return doc, err
}

func (s *Server) handleReset(c *gin.Context) {
	id := s.sessionID(c)
	if c.PostForm("confirm") == "yes" {
		s.store.Apply(id, session.Reset{})
	}
	backToIndex(c)
}

// ---------------------------------------------------------------------------
// JSON API
// ---------------------------------------------------------------------------

func (s *Server) handleAPIGenerate(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), s.logger)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var in pitchdeck.PitchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed JSON body"})
		return
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	deck, err := s.gen.GenerateDeck(c.Request.Context(), in)
	s.metrics.generations.WithLabelValues(resultOf(err)).Inc()
	s.metrics.generationTime.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Warn("generation failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": pitchdeck.ErrGeneration.Error()})
		return
	}
	c.JSON(http.StatusOK, deck)
}

func (s *Server) handleAPIExport(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), s.logger)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var deck pitchdeck.GeneratedDeck
	if err := c.ShouldBindJSON(&deck); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed JSON body"})
		return
	}
	if err := deck.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Identical concurrent requests share one export, run on the server
	// context. Each caller waits on its own request.
	ch := s.exports.DoChan(deckKey(&deck), func() (any, error) {
		return s.export(s.background(), &deck)
	})
	select {
	case <-c.Request.Context().Done():
		log.Debug("export abandoned by client")
		c.Abort()
	case res := <-ch:
		if res.Err != nil {
			log.Warn("export failed", "error", res.Err, "shared", res.Shared)
			c.JSON(http.StatusInternalServerError, gin.H{"error": pitchdeck.ErrExport.Error()})
			return
		}
		attachment(c, res.Val.(*pitchdeck.Document))
	}
}

// deckKey identifies a deck by content.
func deckKey(deck *pitchdeck.GeneratedDeck) string {
	data, _ := json.Marshal(deck)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
