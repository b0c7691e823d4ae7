package reading

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-tranquille-api/internal/application/generation"
	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/internal/infrastructure/persistence/memory"
	"lecture-tranquille-api/internal/workflow/prompt"
	apperrors "lecture-tranquille-api/pkg/errors"
)

type fakeCatalog struct {
	texts map[int64]*entity.Text
	qcm   map[int64][]*entity.MultipleChoiceQuestion
	open  map[int64][]*entity.OpenQuestion
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		texts: map[int64]*entity.Text{
			1: {ID: 1, Level: "CE1", Title: "Le chat Minou", Body: "Minou est un petit chat gris qui aime dormir au soleil."},
			2: {ID: 2, Level: "CE1", Title: "Le vélo", Body: "Léo fait du vélo."},
		},
		qcm: map[int64][]*entity.MultipleChoiceQuestion{
			1: {{ID: 10, TextID: 1, Prompt: "Qui est Minou ?", OptionA: "Un chien", OptionB: "Un chat", OptionC: "Un oiseau", CorrectAnswer: "Un chat"}},
		},
		open: map[int64][]*entity.OpenQuestion{
			1: {{ID: 20, TextID: 1, Prompt: "Pourquoi Minou aime-t-il le soleil ?", ProposedAnswer: "Parce qu'il a chaud."}},
		},
	}
}

func (c *fakeCatalog) ListTextsByLevel(_ context.Context, level string) ([]*entity.Text, error) {
	var out []*entity.Text
	for _, t := range c.texts {
		if t.Level == level {
			out = append(out, t)
		}
	}
	return out, nil
}

func (c *fakeCatalog) GetText(_ context.Context, id int64) (*entity.Text, error) {
	return c.texts[id], nil
}

func (c *fakeCatalog) ListMultipleChoice(_ context.Context, textID int64) ([]*entity.MultipleChoiceQuestion, error) {
	return c.qcm[textID], nil
}

func (c *fakeCatalog) ListOpenQuestions(_ context.Context, textID int64) ([]*entity.OpenQuestion, error) {
	return c.open[textID], nil
}

type countingResults struct {
	mu      sync.Mutex
	results []*entity.ReadingResult
	err     error
}

func (r *countingResults) PersistResult(_ context.Context, res *entity.ReadingResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.results = append(r.results, res)
	return nil
}

func (r *countingResults) ListResults(context.Context, int64, int) ([]*entity.ReadingResult, error) {
	return r.results, nil
}

type scriptedGenerator struct {
	result generation.Result
	reqs   []prompt.Request
}

func (g *scriptedGenerator) Generate(_ context.Context, req prompt.Request) generation.Result {
	g.reqs = append(g.reqs, req)
	return g.result
}

type fixture struct {
	svc     *Service
	results *countingResults
	gen     *scriptedGenerator
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		results: &countingResults{},
		gen:     &scriptedGenerator{result: generation.Result{Text: "Il était une fois un ours."}},
		now:     time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(memory.NewSessionStore(0), newFakeCatalog(), f.results, generation.NewService(f.gen))
	f.svc.SetClock(func() time.Time { return f.now })
	return f
}

func (f *fixture) session(t *testing.T) string {
	t.Helper()
	sess, err := f.svc.CreateSession(context.Background(), "CE1")
	require.NoError(t, err)
	_, err = f.svc.SelectText(context.Background(), sess.ID, 1)
	require.NoError(t, err)
	return sess.ID
}

func (f *fixture) readFor(t *testing.T, id string, d time.Duration) {
	t.Helper()
	ctx := context.Background()
	tr, err := f.svc.Start(ctx, id)
	require.NoError(t, err)
	require.False(t, tr.Ignored)
	f.now = f.now.Add(d)
	tr, err = f.svc.Stop(ctx, id)
	require.NoError(t, err)
	require.False(t, tr.Ignored)
}

func TestComputeAndPersistWritesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.session(t)
	f.readFor(t, id, 30*time.Second)

	first, err := f.svc.ComputeAndPersist(ctx, id)
	require.NoError(t, err)
	assert.True(t, first.Persisted)
	require.NotNil(t, first.WordsPerMinute)
	// 11 词 / 0.5 分钟
	assert.InDelta(t, 22.0, *first.WordsPerMinute, 1e-9)

	second, err := f.svc.ComputeAndPersist(ctx, id)
	require.NoError(t, err)
	assert.False(t, second.Persisted)
	assert.Equal(t, *first.WordsPerMinute, *second.WordsPerMinute)

	require.Len(t, f.results.results, 1)
	assert.Equal(t, int64(1), f.results.results[0].TextID)
	assert.Equal(t, 11, f.results.results[0].WordsRead)
}

func TestComputeAndPersistConcurrentCallsWriteOnce(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)
	f.readFor(t, id, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.svc.ComputeAndPersist(context.Background(), id)
		}()
	}
	wg.Wait()
	assert.Len(t, f.results.results, 1)
}

func TestComputeAndPersistWithoutElapsedTime(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)
	f.readFor(t, id, 0)

	rep, err := f.svc.ComputeAndPersist(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, rep.WordsPerMinute)
	assert.False(t, rep.Persisted)
	assert.Empty(t, f.results.results)
}

func TestComputeAndPersistBeforeFinishIsIgnored(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)

	rep, err := f.svc.ComputeAndPersist(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, rep.Ignored)
	assert.Empty(t, f.results.results)
}

func TestComputeAndPersistFailureKeepsLatchOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.session(t)
	f.readFor(t, id, time.Minute)

	f.results.err = errors.New("database is locked")
	_, err := f.svc.ComputeAndPersist(ctx, id)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDatabaseError))

	sess, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.False(t, sess.ResultPersisted)

	f.results.err = nil
	rep, err := f.svc.ComputeAndPersist(ctx, id)
	require.NoError(t, err)
	assert.True(t, rep.Persisted)
	assert.Len(t, f.results.results, 1)
}

// flakySessions 第一次保存已落库标记的会话时失败
type flakySessions struct {
	*memory.SessionStore
	failed bool
}

func (s *flakySessions) Save(ctx context.Context, sess *entity.ReadingSession) error {
	if sess.ResultPersisted && !s.failed {
		s.failed = true
		return errors.New("connection reset")
	}
	return s.SessionStore.Save(ctx, sess)
}

func TestComputeAndPersistSessionSaveFailureWritesNoRow(t *testing.T) {
	f := newFixture(t)
	f.svc.sessions = &flakySessions{SessionStore: memory.NewSessionStore(0)}
	ctx := context.Background()
	id := f.session(t)
	f.readFor(t, id, time.Minute)

	_, err := f.svc.ComputeAndPersist(ctx, id)
	require.Error(t, err)
	assert.Empty(t, f.results.results)

	sess, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.False(t, sess.ResultPersisted)

	rep, err := f.svc.ComputeAndPersist(ctx, id)
	require.NoError(t, err)
	assert.True(t, rep.Persisted)
	rep, err = f.svc.ComputeAndPersist(ctx, id)
	require.NoError(t, err)
	assert.False(t, rep.Persisted)
	assert.Len(t, f.results.results, 1)
}

func TestWordsReadAdjustment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.session(t)
	f.readFor(t, id, time.Minute)

	_, err := f.svc.SetWordsRead(ctx, id, 50)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeOutOfRangeInput))

	tr, err := f.svc.SetWordsRead(ctx, id, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, tr.Session.WordsRead)

	rep, err := f.svc.ComputeAndPersist(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, *rep.WordsPerMinute, 1e-9)
}

func TestStopFromIdleIsIgnored(t *testing.T) {
	f := newFixture(t)
	id := f.session(t)

	tr, err := f.svc.Stop(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, tr.Ignored)
	assert.Equal(t, entity.ReadingPhaseIdle, tr.Session.Phase)
}

func TestUnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Start(context.Background(), "missing")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeSessionNotFound))
}

func TestSelectUnknownText(t *testing.T) {
	f := newFixture(t)
	sess, err := f.svc.CreateSession(context.Background(), "CP")
	require.NoError(t, err)

	_, err = f.svc.SelectText(context.Background(), sess.ID, 99)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTextNotFound))
}

func TestQuizFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.session(t)
	qcmKey := entity.QuestionKey(1, entity.QuestionKindMultipleChoice, 10)
	openKey := entity.QuestionKey(1, entity.QuestionKindOpen, 20)

	quiz, err := f.svc.Quiz(ctx, id)
	require.NoError(t, err)
	require.Len(t, quiz.MultipleChoice, 1)
	require.Len(t, quiz.Open, 1)
	assert.Nil(t, quiz.MultipleChoice[0].Correct)
	assert.Empty(t, quiz.Open[0].ProposedAnswer)

	quiz, err = f.svc.SubmitAnswer(ctx, id, qcmKey, "Un chien")
	require.NoError(t, err)
	require.NotNil(t, quiz.MultipleChoice[0].Correct)
	assert.False(t, *quiz.MultipleChoice[0].Correct)
	assert.Equal(t, "Un chat", quiz.MultipleChoice[0].CorrectAnswer)

	quiz, err = f.svc.SubmitAnswer(ctx, id, qcmKey, "Un chat")
	require.NoError(t, err)
	assert.True(t, *quiz.MultipleChoice[0].Correct)

	quiz, err = f.svc.RevealProposedAnswer(ctx, id, openKey)
	require.NoError(t, err)
	assert.True(t, quiz.Open[0].Revealed)
	assert.Equal(t, "Parce qu'il a chaud.", quiz.Open[0].ProposedAnswer)

	_, err = f.svc.SubmitAnswer(ctx, id, entity.QuestionKey(1, entity.QuestionKindMultipleChoice, 99), "x")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnknownQuestion))
	_, err = f.svc.SubmitAnswer(ctx, id, entity.QuestionKey(2, entity.QuestionKindMultipleChoice, 10), "x")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnknownQuestion))
}

func TestResetInvalidatesOldWidgets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.session(t)
	openKey := entity.QuestionKey(1, entity.QuestionKindOpen, 20)

	quiz, err := f.svc.Quiz(ctx, id)
	require.NoError(t, err)
	oldWidget := quiz.Open[0].WidgetKey
	_, err = f.svc.SaveDraft(ctx, id, oldWidget, "Il aime la chaleur")
	require.NoError(t, err)
	_, err = f.svc.RevealProposedAnswer(ctx, id, openKey)
	require.NoError(t, err)

	tr, err := f.svc.Reset(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, tr.Session.Questions)

	quiz, err = f.svc.Quiz(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, oldWidget, quiz.Open[0].WidgetKey)
	assert.False(t, quiz.Open[0].Revealed)
	assert.Empty(t, quiz.Open[0].Draft)

	_, err = f.svc.SaveDraft(ctx, id, oldWidget, "trop tard")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStaleWidget))
}

func TestGenerateThenAmend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.svc.CreateSession(ctx, "CP")
	require.NoError(t, err)

	_, err = f.svc.Generate(ctx, sess.ID, GenerateInput{Mode: "story", Text: "   "})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeEmptyCreationInput))

	out, err := f.svc.Generate(ctx, sess.ID, GenerateInput{Level: "CP", Mode: "story", Text: "un ours gentil"})
	require.NoError(t, err)
	require.True(t, out.Result.OK())
	assert.False(t, out.Amendment)
	assert.Equal(t, "Il était une fois un ours.", out.Session.GeneratedText)
	assert.Equal(t, int64(1), out.Session.Epoch)

	f.gen.result = generation.Result{Text: "Il était une fois un ours et une chouette."}
	out, err = f.svc.Generate(ctx, sess.ID, GenerateInput{Level: "CP", Mode: "story", Text: "ajoute une chouette"})
	require.NoError(t, err)
	assert.True(t, out.Amendment)
	require.Len(t, f.gen.reqs, 2)
	assert.Equal(t, "Il était une fois un ours.", f.gen.reqs[1].PriorText)
	assert.Equal(t, "Il était une fois un ours et une chouette.", out.Session.GeneratedText)

	tr, err := f.svc.NewIdea(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, tr.Session.GeneratedText)
	assert.Equal(t, int64(3), tr.Session.Epoch)
}

func TestGenerateFailureKeepsCurrentText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.svc.CreateSession(ctx, "CE2")
	require.NoError(t, err)
	_, err = f.svc.Generate(ctx, sess.ID, GenerateInput{Mode: "science_explainer", Text: "la pluie"})
	require.NoError(t, err)

	f.gen.result = generation.Result{Failure: &generation.Failure{Kind: generation.FailureBackend, Message: generation.MessageBackend}}
	out, err := f.svc.Generate(ctx, sess.ID, GenerateInput{Mode: "science_explainer", Text: "et la neige ?"})
	require.NoError(t, err)
	assert.False(t, out.Result.OK())
	assert.Equal(t, "Il était une fois un ours.", out.Session.GeneratedText)
	assert.Equal(t, int64(1), out.Session.Epoch)
	assert.Equal(t, "CE2", f.gen.reqs[1].AgeBand.Level)
}

func TestGenerateRejectsStaleInputWidget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess, err := f.svc.CreateSession(ctx, "CP")
	require.NoError(t, err)
	stale := sess.WidgetKey(entity.WidgetCreationInput, "")

	_, err = f.svc.Generate(ctx, sess.ID, GenerateInput{Mode: "story", Text: "un ours", WidgetKey: stale})
	require.NoError(t, err)

	_, err = f.svc.Generate(ctx, sess.ID, GenerateInput{Mode: "story", Text: "un loup", WidgetKey: stale})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStaleWidget))
}

// blockingGenerator 在 release 关闭前阻塞，模拟慢后端
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	text    string
}

func (g *blockingGenerator) Generate(ctx context.Context, _ prompt.Request) generation.Result {
	close(g.started)
	select {
	case <-g.release:
	case <-ctx.Done():
	}
	return generation.Result{Text: g.text}
}

func newBlockingFixture(t *testing.T) (*fixture, *blockingGenerator) {
	t.Helper()
	f := newFixture(t)
	g := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{}), text: "Le hibou veille."}
	f.svc.generator = generation.NewService(g)
	return f, g
}

func TestGenerateDoesNotBlockSessionsSharingLockStripe(t *testing.T) {
	f, g := newBlockingFixture(t)
	ctx := context.Background()

	a, err := f.svc.CreateSession(ctx, "CP")
	require.NoError(t, err)
	var b *entity.ReadingSession
	for i := 0; i < 10000 && b == nil; i++ {
		s, err := f.svc.CreateSession(ctx, "CP")
		require.NoError(t, err)
		if f.svc.stripe(s.ID) == f.svc.stripe(a.ID) {
			b = s
		}
	}
	require.NotNil(t, b)

	genDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Generate(ctx, a.ID, GenerateInput{Mode: "story", Text: "un hibou"})
		genDone <- err
	}()
	<-g.started

	resetDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Reset(ctx, b.ID)
		resetDone <- err
	}()
	select {
	case err := <-resetDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("reset waited for an unrelated generation")
	}

	close(g.release)
	require.NoError(t, <-genDone)
	sess, err := f.svc.GetSession(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Le hibou veille.", sess.GeneratedText)
}

func TestGenerateDiscardedWhenSessionMovesOn(t *testing.T) {
	f, g := newBlockingFixture(t)
	ctx := context.Background()
	sess, err := f.svc.CreateSession(ctx, "CP")
	require.NoError(t, err)

	genDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Generate(ctx, sess.ID, GenerateInput{Mode: "story", Text: "un hibou"})
		genDone <- err
	}()
	<-g.started

	_, err = f.svc.NewIdea(ctx, sess.ID)
	require.NoError(t, err)
	close(g.release)

	err = <-genDone
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStaleWidget))
	cur, err := f.svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, cur.GeneratedText)
	assert.Equal(t, int64(1), cur.Epoch)
}
