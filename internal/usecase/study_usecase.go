package usecase

import (
	"context"
	"time"

	"github.com/eslsoft/readflow/internal/entity"
	"github.com/eslsoft/readflow/internal/repository"
	"github.com/eslsoft/readflow/internal/usecase/annotate"
)

// StudyUsecase encapsulates business logic for a learner's study state: the
// words and phrases they collect, the words they master, and the sentences
// they flag as unclear.
type StudyUsecase interface {
	CollectWord(ctx context.Context, userID int64, word *entity.StudyWord) (*entity.StudyWord, error)
	MarkWordKnown(ctx context.Context, userID, id int64) (*entity.StudyWord, error)
	ListStudyWords(ctx context.Context, query *repository.ListStudyWordQuery) ([]*entity.StudyWord, int64, error)
	DeleteStudyWord(ctx context.Context, userID, id int64) error

	CollectPhrase(ctx context.Context, userID int64, phrase *entity.StudyPhrase) (*entity.StudyPhrase, error)
	ListStudyPhrases(ctx context.Context, query *repository.ListStudyPhraseQuery) ([]*entity.StudyPhrase, int64, error)
	DeleteStudyPhrase(ctx context.Context, userID, id int64) error

	MarkUnclear(ctx context.Context, mark *entity.UnclearSentence) (*entity.UnclearSentence, error)
	ClearUnclear(ctx context.Context, userID int64, bundleID string, sentenceIdx int) error
	UnclearForBundle(ctx context.Context, userID int64, bundleID string) (map[int]entity.UnclearMark, error)

	// SetsForUser assembles the annotation inputs: the frequency-list
	// highlight set up to the configured tier, plus the learner's study,
	// known and phrase sets.
	SetsForUser(ctx context.Context, userID int64) (entity.StudySets, error)
}

// NewStudyUsecase wires the repositories with default behaviour. vocabTier is
// the highlight ceiling: vocabulary words at or below it are highlighted.
func NewStudyUsecase(
	words repository.StudyWordRepository,
	phrases repository.StudyPhraseRepository,
	unclear repository.UnclearSentenceRepository,
	vocab repository.VocabRepository,
	vocabTier int32,
) StudyUsecase {
	return &studyUsecase{
		words:     words,
		phrases:   phrases,
		unclear:   unclear,
		vocab:     vocab,
		vocabTier: vocabTier,
		clock:     time.Now,
	}
}

type studyUsecase struct {
	words     repository.StudyWordRepository
	phrases   repository.StudyPhraseRepository
	unclear   repository.UnclearSentenceRepository
	vocab     repository.VocabRepository
	vocabTier int32
	clock     func() time.Time
}

func (u *studyUsecase) CollectWord(ctx context.Context, userID int64, word *entity.StudyWord) (*entity.StudyWord, error) {
	if userID <= 0 {
		return nil, entity.ErrInvalidUserID
	}
	if word == nil {
		return nil, entity.ErrInvalidStudyWordText
	}
	text := entity.NormalizeWordToken(word.Word)
	if text == "" {
		return nil, entity.ErrInvalidStudyWordText
	}

	existing, err := u.words.FindByWord(ctx, userID, text)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	if existing != nil {
		// Duplicate collects bump the lookup counter. Re-collecting a word
		// the learner had marked known moves it back into the study set.
		existing.QueryCount++
		existing.Kind = entity.StudyKindStudy
		if word.Notes != "" {
			existing.Notes = word.Notes
		}
		if word.Language.Code() != "" {
			existing.Language = entity.NormalizeLanguage(word.Language)
		}
		existing.Normalize(now)
		return u.words.Update(ctx, existing)
	}

	copy := *word
	copy.Word = text
	copy.UserID = userID
	if copy.QueryCount == 0 {
		copy.QueryCount = 1
	}
	copy.Normalize(now)

	return u.words.Create(ctx, &copy)
}

func (u *studyUsecase) MarkWordKnown(ctx context.Context, userID, id int64) (*entity.StudyWord, error) {
	if id <= 0 {
		return nil, entity.ErrStudyWordNotFound
	}
	existing, err := u.words.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	existing.Kind = entity.StudyKindKnown
	existing.Normalize(u.clock())
	return u.words.Update(ctx, existing)
}

func (u *studyUsecase) ListStudyWords(ctx context.Context, query *repository.ListStudyWordQuery) ([]*entity.StudyWord, int64, error) {
	query.Normalize()
	return u.words.List(ctx, query)
}

func (u *studyUsecase) DeleteStudyWord(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		return entity.ErrStudyWordNotFound
	}
	return u.words.Delete(ctx, userID, id)
}

func (u *studyUsecase) CollectPhrase(ctx context.Context, userID int64, phrase *entity.StudyPhrase) (*entity.StudyPhrase, error) {
	if userID <= 0 {
		return nil, entity.ErrInvalidUserID
	}
	if phrase == nil {
		return nil, entity.ErrInvalidStudyPhrase
	}
	text := annotate.NormalizePhrase(phrase.Text)
	if len(annotate.PhraseTokens(text)) < 2 {
		return nil, entity.ErrInvalidStudyPhrase
	}

	existing, err := u.phrases.FindByText(ctx, userID, text)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	if existing != nil {
		existing.QueryCount++
		existing.UpdatedAt = now
		return u.phrases.Update(ctx, existing)
	}

	copy := *phrase
	copy.Text = text
	copy.UserID = userID
	if copy.QueryCount == 0 {
		copy.QueryCount = 1
	}
	if copy.Language == entity.LanguageUnspecified {
		copy.Language = entity.LanguageEnglish
	}
	copy.CreatedAt = now
	copy.UpdatedAt = now

	return u.phrases.Create(ctx, &copy)
}

func (u *studyUsecase) ListStudyPhrases(ctx context.Context, query *repository.ListStudyPhraseQuery) ([]*entity.StudyPhrase, int64, error) {
	query.Normalize()
	return u.phrases.List(ctx, query)
}

func (u *studyUsecase) DeleteStudyPhrase(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		return entity.ErrStudyPhraseNotFound
	}
	return u.phrases.Delete(ctx, userID, id)
}

func (u *studyUsecase) MarkUnclear(ctx context.Context, mark *entity.UnclearSentence) (*entity.UnclearSentence, error) {
	if mark == nil || mark.UserID <= 0 {
		return nil, entity.ErrInvalidUserID
	}
	if mark.BundleID == "" {
		return nil, entity.ErrInvalidBundleID
	}
	if mark.SentenceIdx < 0 {
		return nil, entity.ErrInvalidSentenceIndex
	}
	choice, ok := entity.ParseUnclearChoice(string(mark.Choice))
	if !ok {
		return nil, entity.ErrInvalidUnclearChoice
	}
	mark.Choice = choice
	return u.unclear.Upsert(ctx, mark)
}

func (u *studyUsecase) ClearUnclear(ctx context.Context, userID int64, bundleID string, sentenceIdx int) error {
	if userID <= 0 {
		return entity.ErrInvalidUserID
	}
	if bundleID == "" {
		return entity.ErrInvalidBundleID
	}
	return u.unclear.Delete(ctx, userID, bundleID, sentenceIdx)
}

func (u *studyUsecase) UnclearForBundle(ctx context.Context, userID int64, bundleID string) (map[int]entity.UnclearMark, error) {
	rows, err := u.unclear.ListForBundle(ctx, userID, bundleID)
	if err != nil {
		return nil, err
	}
	marks := make(map[int]entity.UnclearMark, len(rows))
	for _, row := range rows {
		marks[row.SentenceIdx] = entity.UnclearMark{
			Choice:           row.Choice,
			MaxSimplifyStage: row.MaxSimplifyStage,
		}
	}
	return marks, nil
}

func (u *studyUsecase) SetsForUser(ctx context.Context, userID int64) (entity.StudySets, error) {
	if userID <= 0 {
		return entity.StudySets{}, entity.ErrInvalidUserID
	}

	highlight, err := u.vocab.ListUpToTier(ctx, u.vocabTier)
	if err != nil {
		return entity.StudySets{}, err
	}
	study, err := u.words.ListWords(ctx, userID, entity.StudyKindStudy)
	if err != nil {
		return entity.StudySets{}, err
	}
	known, err := u.words.ListWords(ctx, userID, entity.StudyKindKnown)
	if err != nil {
		return entity.StudySets{}, err
	}
	phrases, err := u.phrases.ListTexts(ctx, userID)
	if err != nil {
		return entity.StudySets{}, err
	}

	return entity.NewStudySets(highlight, study, phrases, known), nil
}
