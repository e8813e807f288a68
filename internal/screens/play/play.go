// Package play is the question screen for every game mode.
package play

import (
	"context"
	"errors"
	"slices"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/quota"
	"github.com/abhisek/closer/internal/router"
	"github.com/abhisek/closer/internal/screen"
	"github.com/abhisek/closer/internal/screens/summary"
	sess "github.com/abhisek/closer/internal/session"
	"github.com/abhisek/closer/internal/spacedrep"
	"github.com/abhisek/closer/internal/store"
	"github.com/abhisek/closer/internal/survival"
	"github.com/abhisek/closer/internal/ui/components"
	"github.com/abhisek/closer/internal/ui/layout"
	"github.com/abhisek/closer/internal/ui/theme"
)

const tickInterval = 100 * time.Millisecond

// How long feedback stays up before the next question.
const (
	feedbackDelay         = 2500 * time.Millisecond
	survivalFeedbackDelay = 600 * time.Millisecond
)

var (
	errNoCards   = errors.New("no cards to play, run `closer cards seed` first")
	errNoReviews = errors.New("no vocabulary cards to review yet")
)

// Deps are the services a play screen needs.
type Deps struct {
	LearnerID string
	Planner   *sess.Planner
	Session   sess.Deps

	// Quota gates the start of a run. Nil disables the check.
	Quota *quota.Gate

	// Limit is the question count for non-survival modes (0 = default).
	Limit int

	// Words receives vocab-map words saved from the feedback card. Nil
	// hides the option.
	Words store.VocabularyRepo

	Now func() time.Time
}

// PlayScreen implements screen.Screen for one run.
type PlayScreen struct {
	deps  Deps
	mode  sess.Mode
	level survival.Level

	state   *sess.SessionState
	choice  components.Choice
	spinner spinner.Model

	questionStart time.Time
	lastTick      time.Time
	feedbackLeft  time.Duration
	stunned       bool
	review        *spacedrep.ReviewState
	holdFeedback  bool

	// saved holds normalized words already in the learner's list.
	saved map[string]bool

	showingQuitConfirm bool
	ending             bool
	errMsg             string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a play screen for mode. level is used by the survival mode.
func New(deps Deps, mode sess.Mode, level survival.Level) *PlayScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &PlayScreen{
		deps:  deps,
		mode:  mode,
		level: level,
		saved: make(map[string]bool),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ArcadeYellow)),
		),
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	return tea.Batch(s.initSession(), s.spinner.Tick)
}

func (s *PlayScreen) Title() string {
	if s.mode == sess.ModeSurvival {
		return s.mode.DisplayName() + " · " + s.level.DisplayName()
	}
	return s.mode.DisplayName()
}

func (s *PlayScreen) Status() string {
	if s.state == nil {
		return ""
	}
	return formatStatus(s.state.Score, s.state.Combo)
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.state == nil {
		return nil
	}
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End run"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.Phase == sess.PhaseFeedback {
		hints := []layout.KeyHint{{Key: "any key", Description: "Next"}}
		if s.canRegister() {
			hints = append(components.Hints(components.KeyRegister), hints...)
		}
		return hints
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case tickMsg:
		return s.handleTick(time.Time(msg))

	case wordsRegisteredMsg:
		for _, w := range msg.Failed {
			delete(s.saved, w)
		}
		return s, nil

	case reviewLoadedMsg:
		if card := s.currentCard(); card != nil && card.ID == msg.CardID {
			s.review = msg.Review
		}
		return s, nil

	case sessionEndMsg:
		return s.handleSessionEnd()

	case spinner.TickMsg:
		if s.state != nil || s.errMsg != "" {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// initSession checks the quota, builds the plan and records the play.
func (s *PlayScreen) initSession() tea.Cmd {
	deps := s.deps
	mode, level := s.mode, s.level
	return func() tea.Msg {
		ctx := context.Background()
		now := deps.Now()

		if deps.Quota != nil {
			if err := deps.Quota.Allow(ctx, deps.LearnerID, now); err != nil {
				return sessionInitMsg{Err: err}
			}
		}

		plan, err := deps.Planner.BuildPlan(ctx, deps.LearnerID, mode, level, deps.Limit, now)
		if err != nil {
			return sessionInitMsg{Err: err}
		}
		if len(plan.Cards) == 0 {
			if mode == sess.ModeVocab {
				return sessionInitMsg{Err: errNoReviews}
			}
			return sessionInitMsg{Err: errNoCards}
		}

		if deps.Quota != nil {
			if err := deps.Quota.Record(ctx, deps.LearnerID, now); err != nil {
				return sessionInitMsg{Err: err}
			}
		}

		msg := sessionInitMsg{State: sess.NewSessionState(plan, deps.LearnerID, deps.Session, now)}
		if deps.Words != nil {
			words, err := deps.Words.ListWords(ctx, deps.LearnerID)
			if err != nil {
				msg.State.Logger.Warn("failed to load saved words", "error", err)
			}
			for _, w := range words {
				msg.Saved = append(msg.Saved, w.Word)
			}
		}
		return msg
	}
}

func (s *PlayScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, quota.ErrQuotaExhausted) {
			s.errMsg = "Today's free play has been used. Come back tomorrow!"
		} else {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}
	s.state = msg.State
	for _, w := range msg.Saved {
		s.saved[w] = true
	}
	now := s.deps.Now()
	s.lastTick = now
	return s, tea.Batch(s.startQuestion(now), tickCmd())
}

// startQuestion resets per-question state for the current card.
func (s *PlayScreen) startQuestion(now time.Time) tea.Cmd {
	card := s.currentCard()
	if card == nil {
		return nil
	}
	s.choice = components.NewChoice(card.Options)
	s.questionStart = now
	s.stunned = false
	s.review = nil
	s.holdFeedback = false

	load := sess.ReviewLoader(s.state)
	if load == nil {
		return nil
	}
	logger := s.state.Logger
	cardID := card.ID
	return func() tea.Msg {
		rs, err := load(context.Background())
		if err != nil {
			logger.Warn("failed to load review state", "card_id", cardID, "error", err)
		}
		return reviewLoadedMsg{CardID: cardID, Review: rs}
	}
}

func (s *PlayScreen) handleTick(t time.Time) (screen.Screen, tea.Cmd) {
	if s.state == nil || s.ending {
		return s, nil
	}
	if s.state.Phase == sess.PhaseEnded {
		return s, endCmd()
	}

	delta := t.Sub(s.lastTick)
	if delta <= 0 || delta > time.Second {
		delta = tickInterval
	}
	s.lastTick = t

	// The run is paused while the quit dialog is open.
	if s.showingQuitConfirm {
		s.questionStart = s.questionStart.Add(delta)
		return s, tickCmd()
	}

	if sess.Tick(s.state, delta) {
		return s, endCmd()
	}

	now := s.deps.Now()
	switch s.state.Phase {
	case sess.PhaseActive:
		s.stunned = sess.Stunned(s.state, now)
		if now.Sub(s.questionStart) >= sess.QuestionLimit(s.state) {
			out, err := sess.HandleTimeout(context.Background(), s.state, now)
			if err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			s.showFeedback(out)
		}
	case sess.PhaseFeedback:
		if s.holdFeedback {
			break
		}
		s.feedbackLeft -= delta
		if s.feedbackLeft <= 0 {
			return s, s.next(now)
		}
	}

	if s.state.Phase == sess.PhaseEnded {
		return s, endCmd()
	}
	return s, tickCmd()
}

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	k := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil || s.ending {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch {
		case key.Matches(msg, components.KeyYes):
			s.showingQuitConfirm = false
			return s, endCmd()
		case key.Matches(msg, components.KeyNo):
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if key.Matches(msg, components.KeyBack) {
		s.showingQuitConfirm = true
		return s, nil
	}

	switch s.state.Phase {
	case sess.PhaseFeedback:
		if key.Matches(msg, components.KeyRegister) && s.canRegister() {
			return s, s.registerWords()
		}
		return s, s.next(s.deps.Now())

	case sess.PhaseActive:
		if i, ok := components.IndexForKey(k); ok {
			s.choice.Cursor = i
			return s.submit()
		}
		switch {
		case key.Matches(msg, components.KeyUp):
			s.choice.Move(-1)
		case key.Matches(msg, components.KeyDown):
			s.choice.Move(1)
		case key.Matches(msg, components.KeySelect):
			return s.submit()
		}
	}
	return s, nil
}

// submit grades the option under the cursor.
func (s *PlayScreen) submit() (screen.Screen, tea.Cmd) {
	now := s.deps.Now()
	rt := min(now.Sub(s.questionStart), sess.QuestionLimit(s.state))

	out, err := sess.HandleAnswer(context.Background(), s.state, s.choice.Cursor, rt, now)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if out == nil {
		// Stunned after a wrong survival answer.
		s.stunned = true
		return s, nil
	}
	s.showFeedback(out)
	if s.state.Phase == sess.PhaseEnded {
		return s, endCmd()
	}
	return s, nil
}

func (s *PlayScreen) showFeedback(out *sess.AnswerOutcome) {
	s.choice.Reveal(out.Choice, out.CorrectIndex)
	s.feedbackLeft = feedbackDelay
	if s.mode == sess.ModeSurvival {
		s.feedbackLeft = survivalFeedbackDelay
	}
}

// next leaves feedback for the following question or ends the run.
func (s *PlayScreen) next(now time.Time) tea.Cmd {
	if !sess.Advance(s.state) {
		return endCmd()
	}
	return s.startQuestion(now)
}

func (s *PlayScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.ending {
		return s, nil
	}
	s.ending = true

	sum, err := sess.Finish(context.Background(), s.state, s.deps.Now())
	if err != nil {
		s.state.Logger.Error("failed to finish run", "error", err)
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, err)}
	}
}

// canRegister reports whether the feedback card has vocab-map words the
// learner has not saved yet.
func (s *PlayScreen) canRegister() bool {
	card := s.currentCard()
	if s.deps.Words == nil || card == nil {
		return false
	}
	for w := range card.VocabMap {
		if !s.saved[content.NormalizeWord(w)] {
			return true
		}
	}
	return false
}

// registerWords saves the unsaved words of the current card's vocab map
// and keeps the feedback up until the next key press.
func (s *PlayScreen) registerWords() tea.Cmd {
	card := s.currentCard()
	now := s.deps.Now()

	words := make([]string, 0, len(card.VocabMap))
	for w := range card.VocabMap {
		words = append(words, w)
	}
	slices.Sort(words)

	var recs []store.VocabularyRecord
	for _, w := range words {
		norm := content.NormalizeWord(w)
		if s.saved[norm] {
			continue
		}
		s.saved[norm] = true
		recs = append(recs, store.VocabularyRecord{
			LearnerID:    s.deps.LearnerID,
			Word:         norm,
			Meanings:     slices.Clone(card.VocabMap[w]),
			SourceCardID: card.ID,
			CreatedAt:    now,
		})
	}
	s.holdFeedback = true

	repo, logger := s.deps.Words, s.state.Logger
	return func() tea.Msg {
		var failed []string
		for _, rec := range recs {
			if err := repo.RegisterWord(context.Background(), rec); err != nil {
				logger.Warn("failed to save word", "word", rec.Word, "error", err)
				failed = append(failed, rec.Word)
			}
		}
		return wordsRegisteredMsg{Failed: failed}
	}
}

func (s *PlayScreen) currentCard() *content.Card {
	if s.state == nil {
		return nil
	}
	return s.state.CurrentCard()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func endCmd() tea.Cmd {
	return func() tea.Msg { return sessionEndMsg{} }
}
