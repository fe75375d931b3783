package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/repository"
)

type fakeStudyWordRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*entity.StudyWord
}

func newFakeStudyWordRepo() *fakeStudyWordRepo {
	return &fakeStudyWordRepo{items: make(map[int64]*entity.StudyWord)}
}

func (r *fakeStudyWordRepo) Create(ctx context.Context, w *entity.StudyWord) (*entity.StudyWord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lookupLocked(w.UserID, w.Word); ok {
		return nil, entity.ErrDuplicateStudyWord
	}
	r.seq++
	copy := *w
	copy.ID = r.seq
	r.items[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeStudyWordRepo) Update(ctx context.Context, w *entity.StudyWord) (*entity.StudyWord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[w.ID]
	if !ok || existing.UserID != w.UserID {
		return nil, entity.ErrStudyWordNotFound
	}
	copy := *w
	r.items[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeStudyWordRepo) GetByID(ctx context.Context, userID, id int64) (*entity.StudyWord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, entity.ErrStudyWordNotFound
	}
	copy := *item
	return &copy, nil
}

func (r *fakeStudyWordRepo) FindByWord(ctx context.Context, userID int64, word string) (*entity.StudyWord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if item, ok := r.lookupLocked(userID, word); ok {
		copy := *item
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeStudyWordRepo) List(ctx context.Context, query *repository.ListStudyWordQuery) ([]*entity.StudyWord, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.StudyWord
	for _, item := range r.items {
		if item.UserID != query.UserID {
			continue
		}
		if query.Kind != "" && item.Kind != query.Kind {
			continue
		}
		copy := *item
		out = append(out, &copy)
	}
	return out, int64(len(out)), nil
}

func (r *fakeStudyWordRepo) ListWords(ctx context.Context, userID int64, kind entity.StudyWordKind) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var words []string
	for _, item := range r.items {
		if item.UserID == userID && item.Kind == kind {
			words = append(words, item.Word)
		}
	}
	return words, nil
}

func (r *fakeStudyWordRepo) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrStudyWordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeStudyWordRepo) lookupLocked(userID int64, word string) (*entity.StudyWord, bool) {
	for _, item := range r.items {
		if item.UserID == userID && item.Word == word {
			return item, true
		}
	}
	return nil, false
}

type fakeStudyPhraseRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*entity.StudyPhrase
}

func newFakeStudyPhraseRepo() *fakeStudyPhraseRepo {
	return &fakeStudyPhraseRepo{items: make(map[int64]*entity.StudyPhrase)}
}

func (r *fakeStudyPhraseRepo) Create(ctx context.Context, p *entity.StudyPhrase) (*entity.StudyPhrase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := *p
	copy.ID = r.seq
	r.items[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeStudyPhraseRepo) Update(ctx context.Context, p *entity.StudyPhrase) (*entity.StudyPhrase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return nil, entity.ErrStudyPhraseNotFound
	}
	copy := *p
	r.items[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeStudyPhraseRepo) FindByText(ctx context.Context, userID int64, text string) (*entity.StudyPhrase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.UserID == userID && item.Text == text {
			copy := *item
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeStudyPhraseRepo) List(ctx context.Context, query *repository.ListStudyPhraseQuery) ([]*entity.StudyPhrase, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.StudyPhrase
	for _, item := range r.items {
		if item.UserID == query.UserID {
			copy := *item
			out = append(out, &copy)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeStudyPhraseRepo) ListTexts(ctx context.Context, userID int64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var texts []string
	for _, item := range r.items {
		if item.UserID == userID {
			texts = append(texts, item.Text)
		}
	}
	return texts, nil
}

func (r *fakeStudyPhraseRepo) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrStudyPhraseNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeUnclearRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*entity.UnclearSentence
}

func newFakeUnclearRepo() *fakeUnclearRepo {
	return &fakeUnclearRepo{items: make(map[int64]*entity.UnclearSentence)}
}

func (r *fakeUnclearRepo) Upsert(ctx context.Context, mark *entity.UnclearSentence) (*entity.UnclearSentence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.UserID == mark.UserID && item.BundleID == mark.BundleID && item.SentenceIdx == mark.SentenceIdx {
			item.Choice = mark.Choice
			item.MaxSimplifyStage = mark.MaxSimplifyStage
			copy := *item
			return &copy, nil
		}
	}
	r.seq++
	copy := *mark
	copy.ID = r.seq
	r.items[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *fakeUnclearRepo) ListForBundle(ctx context.Context, userID int64, bundleID string) ([]*entity.UnclearSentence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.UnclearSentence
	for _, item := range r.items {
		if item.UserID == userID && item.BundleID == bundleID {
			copy := *item
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *fakeUnclearRepo) Delete(ctx context.Context, userID int64, bundleID string, sentenceIdx int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.items {
		if item.UserID == userID && item.BundleID == bundleID && item.SentenceIdx == sentenceIdx {
			delete(r.items, id)
			return nil
		}
	}
	return entity.ErrInvalidSentenceIndex
}

type fakeVocabRepo struct {
	words map[string]int32 // word -> tier
}

func newFakeVocabRepo(words map[string]int32) *fakeVocabRepo {
	if words == nil {
		words = make(map[string]int32)
	}
	return &fakeVocabRepo{words: words}
}

func (r *fakeVocabRepo) ListUpToTier(ctx context.Context, tier int32) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	for word, t := range r.words {
		if t <= tier {
			out = append(out, word)
		}
	}
	return out, nil
}

func (r *fakeVocabRepo) BulkInsert(ctx context.Context, words []entity.VocabWord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	for _, w := range words {
		r.words[w.Word] = w.Tier
	}
	return int64(len(words)), nil
}

func newStudyUsecaseForTest(vocab map[string]int32) (StudyUsecase, *studyUsecase) {
	uc := NewStudyUsecase(
		newFakeStudyWordRepo(),
		newFakeStudyPhraseRepo(),
		newFakeUnclearRepo(),
		newFakeVocabRepo(vocab),
		3,
	)
	return uc, uc.(*studyUsecase)
}

func TestCollectWordCreatesNewEntry(t *testing.T) {
	uc, impl := newStudyUsecaseForTest(nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	impl.clock = func() time.Time { return fixed }

	got, err := uc.CollectWord(context.Background(), 42, &entity.StudyWord{Word: " Serendipity "})
	if err != nil {
		t.Fatalf("CollectWord returned error: %v", err)
	}
	if got.ID == 0 {
		t.Errorf("expected ID to be set, got %d", got.ID)
	}
	if got.Word != "serendipity" {
		t.Errorf("expected normalized word 'serendipity', got %q", got.Word)
	}
	if got.Kind != entity.StudyKindStudy {
		t.Errorf("expected kind study, got %q", got.Kind)
	}
	if got.QueryCount != 1 {
		t.Errorf("expected query count 1, got %d", got.QueryCount)
	}
	if !got.CreatedAt.Equal(fixed) {
		t.Errorf("expected created_at %v, got %v", fixed, got.CreatedAt)
	}
}

func TestCollectWordDuplicateBumpsQueryCount(t *testing.T) {
	uc, impl := newStudyUsecaseForTest(nil)
	first := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	impl.clock = func() time.Time { return first }

	if _, err := uc.CollectWord(context.Background(), 1, &entity.StudyWord{Word: "apple"}); err != nil {
		t.Fatalf("CollectWord initial call failed: %v", err)
	}

	second := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	impl.clock = func() time.Time { return second }
	res, err := uc.CollectWord(context.Background(), 1, &entity.StudyWord{Word: "Apple", Notes: "again"})
	if err != nil {
		t.Fatalf("CollectWord duplicate failed: %v", err)
	}
	if res.QueryCount != 2 {
		t.Errorf("expected query count 2, got %d", res.QueryCount)
	}
	if res.Notes != "again" {
		t.Errorf("expected notes to update, got %q", res.Notes)
	}
	if !res.UpdatedAt.Equal(second) {
		t.Errorf("expected updated_at %v, got %v", second, res.UpdatedAt)
	}
}

func TestCollectWordRevivesKnownWord(t *testing.T) {
	uc, impl := newStudyUsecaseForTest(nil)
	impl.clock = time.Now

	created, err := uc.CollectWord(context.Background(), 7, &entity.StudyWord{Word: "harbor"})
	if err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}
	if _, err := uc.MarkWordKnown(context.Background(), 7, created.ID); err != nil {
		t.Fatalf("MarkWordKnown failed: %v", err)
	}

	res, err := uc.CollectWord(context.Background(), 7, &entity.StudyWord{Word: "harbor"})
	if err != nil {
		t.Fatalf("CollectWord after known failed: %v", err)
	}
	if res.Kind != entity.StudyKindStudy {
		t.Errorf("expected re-collected word to return to study kind, got %q", res.Kind)
	}
}

func TestCollectWordRejectsEmptyText(t *testing.T) {
	uc, _ := newStudyUsecaseForTest(nil)
	if _, err := uc.CollectWord(context.Background(), 1, &entity.StudyWord{Word: "   "}); err != entity.ErrInvalidStudyWordText {
		t.Fatalf("expected ErrInvalidStudyWordText, got %v", err)
	}
	if _, err := uc.CollectWord(context.Background(), 0, &entity.StudyWord{Word: "fine"}); err != entity.ErrInvalidUserID {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestCollectPhraseRequiresMultipleWords(t *testing.T) {
	uc, _ := newStudyUsecaseForTest(nil)
	if _, err := uc.CollectPhrase(context.Background(), 1, &entity.StudyPhrase{Text: "single"}); err != entity.ErrInvalidStudyPhrase {
		t.Fatalf("expected ErrInvalidStudyPhrase for single word, got %v", err)
	}

	got, err := uc.CollectPhrase(context.Background(), 1, &entity.StudyPhrase{Text: "  Give   UP  "})
	if err != nil {
		t.Fatalf("CollectPhrase failed: %v", err)
	}
	if got.Text != "give up" {
		t.Errorf("expected normalized phrase 'give up', got %q", got.Text)
	}

	again, err := uc.CollectPhrase(context.Background(), 1, &entity.StudyPhrase{Text: "give up"})
	if err != nil {
		t.Fatalf("CollectPhrase duplicate failed: %v", err)
	}
	if again.QueryCount != 2 {
		t.Errorf("expected query count 2 on duplicate collect, got %d", again.QueryCount)
	}
}

func TestMarkUnclearValidatesChoice(t *testing.T) {
	uc, _ := newStudyUsecaseForTest(nil)
	_, err := uc.MarkUnclear(context.Background(), &entity.UnclearSentence{
		UserID: 1, BundleID: "b1", SentenceIdx: 3, Choice: "syntax",
	})
	if err != entity.ErrInvalidUnclearChoice {
		t.Fatalf("expected ErrInvalidUnclearChoice, got %v", err)
	}

	mark, err := uc.MarkUnclear(context.Background(), &entity.UnclearSentence{
		UserID: 1, BundleID: "b1", SentenceIdx: 3, Choice: entity.UnclearGrammar,
	})
	if err != nil {
		t.Fatalf("MarkUnclear failed: %v", err)
	}
	if mark.Choice != entity.UnclearGrammar {
		t.Errorf("expected grammar choice, got %q", mark.Choice)
	}

	marks, err := uc.UnclearForBundle(context.Background(), 1, "b1")
	if err != nil {
		t.Fatalf("UnclearForBundle failed: %v", err)
	}
	if len(marks) != 1 || marks[3].Choice != entity.UnclearGrammar {
		t.Fatalf("expected unclear mark at index 3, got %+v", marks)
	}

	if err := uc.ClearUnclear(context.Background(), 1, "b1", 3); err != nil {
		t.Fatalf("ClearUnclear failed: %v", err)
	}
}

func TestSetsForUserAssemblesAllSets(t *testing.T) {
	uc, impl := newStudyUsecaseForTest(map[string]int32{
		"house":    1,
		"garden":   2,
		"nebulous": 5,
	})
	impl.clock = time.Now

	word, err := uc.CollectWord(context.Background(), 3, &entity.StudyWord{Word: "ephemeral"})
	if err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}
	known, err := uc.CollectWord(context.Background(), 3, &entity.StudyWord{Word: "obvious"})
	if err != nil {
		t.Fatalf("CollectWord failed: %v", err)
	}
	if _, err := uc.MarkWordKnown(context.Background(), 3, known.ID); err != nil {
		t.Fatalf("MarkWordKnown failed: %v", err)
	}
	if _, err := uc.CollectPhrase(context.Background(), 3, &entity.StudyPhrase{Text: "figure out"}); err != nil {
		t.Fatalf("CollectPhrase failed: %v", err)
	}

	sets, err := uc.SetsForUser(context.Background(), 3)
	if err != nil {
		t.Fatalf("SetsForUser failed: %v", err)
	}
	if _, ok := sets.HighlightSet["house"]; !ok {
		t.Error("expected tier-1 word in highlight set")
	}
	if _, ok := sets.HighlightSet["nebulous"]; ok {
		t.Error("expected tier-5 word to be excluded from highlight set")
	}
	if _, ok := sets.StudyWordSet[word.Word]; !ok {
		t.Error("expected collected word in study set")
	}
	if _, ok := sets.KnownWords["obvious"]; !ok {
		t.Error("expected mastered word in known set")
	}
	if _, ok := sets.StudyPhraseSet["figure out"]; !ok {
		t.Error("expected collected phrase in phrase set")
	}
}
