package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/closer/internal/content"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReviewRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReviewRepo()
	ctx := context.Background()

	got, err := repo.GetReview(ctx, "me", "c1")
	require.NoError(t, err)
	assert.Nil(t, got, "never reviewed card")

	now := time.UnixMilli(1_700_000_000_000).UTC()
	rec := &ReviewRecord{
		LearnerID:      "me",
		CardID:         "c1",
		Stage:          2,
		LastReviewedAt: now,
		NextReviewAt:   now.Add(48 * time.Hour),
		MemoryStrength: 1.2,
		CorrectCount:   1,
	}
	require.NoError(t, repo.PutReview(ctx, rec))

	got, err = repo.GetReview(ctx, "me", "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, got)

	// Overwrite.
	rec.Stage = 3
	rec.CorrectCount = 2
	require.NoError(t, repo.PutReview(ctx, rec))
	got, err = repo.GetReview(ctx, "me", "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stage)
	assert.Equal(t, 2, got.CorrectCount)

	require.NoError(t, repo.PutReview(ctx, &ReviewRecord{
		LearnerID: "me", CardID: "c0", Stage: 1,
		LastReviewedAt: now, NextReviewAt: now.Add(time.Hour), MemoryStrength: 1,
	}))
	require.NoError(t, repo.PutReview(ctx, &ReviewRecord{
		LearnerID: "other", CardID: "c1", Stage: 1,
		LastReviewedAt: now, NextReviewAt: now, MemoryStrength: 1,
	}))

	list, err := repo.ListReviews(ctx, "me")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c0", list[0].CardID, "earliest due first")

	require.NoError(t, repo.DeleteReviews(ctx, "me"))
	list, err = repo.ListReviews(ctx, "me")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = repo.ListReviews(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, list, 1, "other learner untouched")
}

func TestReviewRepoRejectsBadStage(t *testing.T) {
	s := openTestStore(t)
	err := s.ReviewRepo().PutReview(context.Background(), &ReviewRecord{
		LearnerID: "me", CardID: "c1", Stage: 9,
	})
	assert.Error(t, err)
}

func TestAnswerRepoOrdering(t *testing.T) {
	s := openTestStore(t)
	repo := s.AnswerRepo()
	ctx := context.Background()

	// Identical timestamps must still read back in append order.
	at := time.UnixMilli(1_700_000_000_000).UTC()
	for i := range 5 {
		require.NoError(t, repo.AppendAnswer(ctx, AnswerRecord{
			LearnerID:    "me",
			CardID:       fmt.Sprintf("c%d", i),
			Category:     "時制",
			Correct:      i%2 == 0,
			ResponseTime: time.Duration(i+1) * time.Second,
			AnsweredAt:   at,
		}))
	}

	hist, err := repo.AnswerHistory(ctx, "me", 0)
	require.NoError(t, err)
	require.Len(t, hist, 5)
	for i, rec := range hist {
		want := fmt.Sprintf("c%d", 4-i)
		if rec.CardID != want {
			t.Errorf("history[%d].CardID = %q, want %q", i, rec.CardID, want)
		}
	}
	assert.True(t, hist[0].Correct)
	assert.Equal(t, 5*time.Second, hist[0].ResponseTime)
	assert.Equal(t, at, hist[0].AnsweredAt)
	assert.Greater(t, hist[0].Seq, hist[1].Seq)

	limited, err := repo.AnswerHistory(ctx, "me", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "c4", limited[0].CardID)

	require.NoError(t, repo.DeleteAnswers(ctx, "me"))
	hist, err = repo.AnswerHistory(ctx, "me", 0)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestSequenceCounterConcurrent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const n = 20
	seen := make(map[int64]bool, n)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := s.answerSeq.Next(ctx)
			if err != nil {
				t.Errorf("Next() error: %v", err)
				return
			}
			mu.Lock()
			seen[seq] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n, "sequence numbers must be unique")
	for i := int64(1); i <= n; i++ {
		assert.True(t, seen[i], "missing sequence %d", i)
	}
}

func TestRunRepoLeaderboard(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000).UTC()

	runs := []RunRecord{
		{LearnerID: "a", Mode: "national", Score: 1000, Elapsed: 50 * time.Second, Rank: "B"},
		{LearnerID: "b", Mode: "national", Score: 3000, Elapsed: 90 * time.Second, Rank: "A"},
		{LearnerID: "c", Mode: "national", Score: 3000, Elapsed: 60 * time.Second, Rank: "A"},
		{LearnerID: "a", Mode: "survival", Score: 9000, Elapsed: 10 * time.Second},
	}
	for i, r := range runs {
		r.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.SaveRun(ctx, r))
	}

	board, err := repo.Leaderboard(ctx, "national", 10)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "c", board[0].LearnerID, "ties broken by elapsed time")
	assert.Equal(t, "b", board[1].LearnerID)
	assert.Equal(t, "a", board[2].LearnerID)
	assert.NotEmpty(t, board[0].ID)
	assert.Equal(t, 60*time.Second, board[0].Elapsed)

	all, err := repo.Leaderboard(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "survival", all[0].Mode)

	best, err := repo.BestRun(ctx, "a", "national")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), best.Score)

	_, err = repo.BestRun(ctx, "nobody", "national")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.DeleteRuns(ctx, "a"))
	all, err = repo.Leaderboard(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCardRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.CardRepo()
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000).UTC()

	cards := []content.Card{
		{
			ID: "v1", Prompt: "The ___ was approved.", Options: [4]string{"budget", "budgets", "budgeted", "budgeting"},
			CorrectIndex: 0, Type: content.TypeVocabulary, Category: "語彙", Difficulty: "500",
			VocabMap: map[string][]string{"budget": {"予算"}}, CreatedAt: base,
		},
		{
			ID: "g1", Prompt: "She ___ there since 2020.", Options: [4]string{"works", "has worked", "worked", "working"},
			CorrectIndex: 1, Type: content.TypeGrammar, Category: "時制", Difficulty: "700",
			Explanation: "since + 現在完了", CreatedAt: base.Add(time.Second),
		},
		{
			ID: "g2", Prompt: "He arrived ___ noon.", Options: [4]string{"at", "in", "on", "by"},
			CorrectIndex: 0, Type: content.TypeGrammar, Category: "前置詞", Difficulty: "900",
			CreatedAt: base.Add(2 * time.Second),
		},
	}
	require.NoError(t, repo.SaveCards(ctx, cards))

	n, err := repo.CountCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Upsert does not duplicate.
	cards[0].Explanation = "updated"
	require.NoError(t, repo.SaveCards(ctx, cards[:1]))
	n, err = repo.CountCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := repo.GetCards(ctx, []string{"g1", "missing", "v1"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "g1", got[0].ID, "input order kept")
	assert.Equal(t, cards[1], got[0])
	assert.Equal(t, "updated", got[1].Explanation)
	assert.Equal(t, []string{"予算"}, got[1].VocabMap["budget"])

	tests := []struct {
		name string
		q    CardQuery
		want []string
	}{
		{"all newest first", CardQuery{}, []string{"g2", "g1", "v1"}},
		{"oldest first", CardQuery{Oldest: true}, []string{"v1", "g1", "g2"}},
		{"limit", CardQuery{Oldest: true, Limit: 2}, []string{"v1", "g1"}},
		{"categories", CardQuery{Categories: []string{"時制", "前置詞"}}, []string{"g2", "g1"}},
		{"exclude", CardQuery{ExcludeIDs: []string{"g2"}}, []string{"g1", "v1"}},
		{"type", CardQuery{Type: content.TypeVocabulary}, []string{"v1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListCards(ctx, tt.q)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, c := range got {
				ids[i] = c.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestPlayRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.PlayRepo()
	ctx := context.Background()

	first := time.UnixMilli(1_700_000_000_000).UTC()
	got, err := repo.FirstUse(ctx, "me", first)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = repo.FirstUse(ctx, "me", first.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first, got, "first use is recorded once")

	n, err := repo.PlayCount(ctx, "me", "2026-10-19")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.IncrementPlay(ctx, "me", "2026-10-19"))
	require.NoError(t, repo.IncrementPlay(ctx, "me", "2026-10-19"))
	n, err = repo.PlayCount(ctx, "me", "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.PlayCount(ctx, "me", "2026-10-20")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.DeletePlays(ctx, "me"))
	n, err = repo.PlayCount(ctx, "me", "2026-10-19")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEventRepoUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	since := time.Now().Add(-time.Minute)

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "m", Purpose: "question_gen",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 1200, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "m", Purpose: "question_review",
		InputTokens: 10, Success: false, ErrorMessage: "rate limited",
	}))

	u, err := repo.LLMUsageSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, LLMUsage{Requests: 2, Failures: 1, InputTokens: 110, OutputTokens: 50}, u)

	u, err = repo.LLMUsageSince(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, LLMUsage{}, u)
}

func TestEnsureDirSkipsURIs(t *testing.T) {
	tests := []string{
		"file::memory:?cache=shared",
		"postgres://localhost/closer",
	}
	for _, dsn := range tests {
		if err := EnsureDir(dsn); err != nil {
			t.Errorf("EnsureDir(%q) = %v, want nil", dsn, err)
		}
	}
}

func TestRunRepoHistory(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000).UTC()

	for i, r := range []RunRecord{
		{LearnerID: "me", Mode: "national", Score: 1000},
		{LearnerID: "you", Mode: "national", Score: 5000},
		{LearnerID: "me", Mode: "survival", Score: 700},
		{LearnerID: "me", Mode: "forYou", Score: 2500},
	} {
		r.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.SaveRun(ctx, r))
	}

	hist, err := repo.History(ctx, "me", 0)
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, []string{"forYou", "survival", "national"},
		[]string{hist[0].Mode, hist[1].Mode, hist[2].Mode}, "newest first")

	hist, err = repo.History(ctx, "me", 2)
	require.NoError(t, err)
	assert.Len(t, hist, 2)

	hist, err = repo.History(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestVocabularyRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.VocabularyRepo()
	ctx := context.Background()
	now := time.UnixMilli(1_700_000_000_000).UTC()

	require.NoError(t, repo.RegisterWord(ctx, VocabularyRecord{
		LearnerID: "me", Word: " Postpone ", Meanings: []string{"延期する", "先送りする", "遅らせる", "後回し"},
		SourceCardID: "q1", CreatedAt: now,
	}))
	require.NoError(t, repo.RegisterWord(ctx, VocabularyRecord{
		LearnerID: "me", Word: "acquire", Meanings: []string{"買収する"}, CreatedAt: now.Add(time.Minute),
	}))
	require.NoError(t, repo.RegisterWord(ctx, VocabularyRecord{
		LearnerID: "you", Word: "acquire", Meanings: []string{"獲得する"}, CreatedAt: now,
	}))

	words, err := repo.ListWords(ctx, "me")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "acquire", words[0].Word, "newest first")
	assert.Equal(t, "postpone", words[1].Word)
	assert.Equal(t, []string{"延期する", "先送りする", "遅らせる"}, words[1].Meanings)
	assert.Equal(t, "q1", words[1].SourceCardID)

	// Registering again replaces the meanings but keeps the position.
	require.NoError(t, repo.RegisterWord(ctx, VocabularyRecord{
		LearnerID: "me", Word: "POSTPONE", Meanings: []string{"延期する"}, SourceCardID: "q9",
		CreatedAt: now.Add(time.Hour),
	}))
	words, err = repo.ListWords(ctx, "me")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "postpone", words[1].Word)
	assert.Equal(t, []string{"延期する"}, words[1].Meanings)
	assert.Equal(t, "q9", words[1].SourceCardID)
	assert.Equal(t, now, words[1].CreatedAt)

	assert.Error(t, repo.RegisterWord(ctx, VocabularyRecord{LearnerID: "me", Word: "empty"}))
	assert.Error(t, repo.RegisterWord(ctx, VocabularyRecord{LearnerID: "me", Word: " ", Meanings: []string{"x"}}))

	require.NoError(t, repo.DeleteWords(ctx, "me"))
	words, err = repo.ListWords(ctx, "me")
	require.NoError(t, err)
	assert.Empty(t, words)

	words, err = repo.ListWords(ctx, "you")
	require.NoError(t, err)
	assert.Len(t, words, 1)
}
