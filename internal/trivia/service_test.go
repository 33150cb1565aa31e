package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCategoryStore struct {
	categories []Category
	err        error
}

func (s *stubCategoryStore) ListOrdered(ctx context.Context) ([]Category, error) {
	return s.categories, s.err
}

func (s *stubCategoryStore) GetByID(ctx context.Context, id int) (Category, error) {
	if s.err != nil {
		return Category{}, s.err
	}
	for _, cat := range s.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return Category{}, ErrNotFound
}

type stubQuestionStore struct {
	questions []Question
	nextID    int
	listErr   error
	insertErr error
	deleteErr error
}

func (s *stubQuestionStore) ListOrdered(ctx context.Context) ([]Question, error) {
	return s.questions, s.listErr
}

func (s *stubQuestionStore) ListByCategory(ctx context.Context, category string) ([]Question, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []Question
	for _, q := range s.questions {
		if q.Category.String() == category {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *stubQuestionStore) Search(ctx context.Context, term string) ([]Question, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []Question
	for _, q := range s.questions {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(term)) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *stubQuestionStore) GetByID(ctx context.Context, id int) (Question, error) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, ErrNotFound
}

func (s *stubQuestionStore) Insert(ctx context.Context, q Question) (int, error) {
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	s.nextID++
	q.ID = s.nextID
	s.questions = append(s.questions, q)
	return q.ID, nil
}

func (s *stubQuestionStore) Delete(ctx context.Context, id int) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func seededStores() (*stubCategoryStore, *stubQuestionStore) {
	cats := &stubCategoryStore{categories: []Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
	}}
	qs := &stubQuestionStore{nextID: 5, questions: []Question{
		{ID: 1, Question: "What is the title of Maya Angelou's autobiography?", Answer: "I Know Why the Caged Bird Sings", Category: "2", Difficulty: 2},
		{ID: 2, Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: "1", Difficulty: 3},
		{ID: 3, Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: "3", Difficulty: 2},
		{ID: 4, Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", Category: "2", Difficulty: 3},
		{ID: 5, Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: "1", Difficulty: 4},
	}}
	return cats, qs
}

func TestCategoriesOrderedMapping(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	res, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)

	body, err := json.Marshal(res.Categories)
	require.NoError(t, err)
	assert.Equal(t, `{"1":"Science","2":"Art","3":"Geography"}`, string(body))
}

func TestCategoriesEmptyTableIsNotFound(t *testing.T) {
	svc := NewService(&stubCategoryStore{}, &stubQuestionStore{})

	_, err := svc.Categories(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoriesStoreFailureIsBadRequest(t *testing.T) {
	// Infrastructure failures are lookup failures, distinct from the 404 an
	// empty table reports.
	svc := NewService(&stubCategoryStore{err: errors.New("boom")}, &stubQuestionStore{})

	_, err := svc.Categories(context.Background())
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestQuestionsFirstPage(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	res, err := svc.Questions(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, res.Questions, 5)
	assert.Equal(t, 5, res.TotalQuestions)
	assert.Len(t, res.Categories, 3)
	assert.Nil(t, res.CurrentCategory)
}

func TestQuestionsPageBeyondDataIsNotFound(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	_, err := svc.Questions(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionsEmptyTableIsNotFound(t *testing.T) {
	// Empty table and out-of-range page are deliberately the same outcome.
	svc := NewService(&stubCategoryStore{}, &stubQuestionStore{})

	_, err := svc.Questions(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	res, err := svc.Search(context.Background(), "tItLe", 1)
	require.NoError(t, err)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, 1, res.Questions[0].ID)
	assert.Equal(t, 1, res.TotalQuestions)
}

func TestSearchTrimsTermAndEmptyMatchesAll(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	res, err := svc.Search(context.Background(), "   ", 1)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 5)
}

func TestSearchZeroMatchesSucceeds(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	res, err := svc.Search(context.Background(), "xylophone", 1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Questions)
	assert.Equal(t, 0, res.TotalQuestions)
}

func TestSearchTotalReflectsPageNotMatchCount(t *testing.T) {
	qs := &stubQuestionStore{}
	for i := 1; i <= 15; i++ {
		qs.questions = append(qs.questions, Question{ID: i, Question: "common text", Category: "1"})
	}
	svc := NewService(&stubCategoryStore{}, qs)

	res, err := svc.Search(context.Background(), "common", 2)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 5)
	assert.Equal(t, 5, res.TotalQuestions, "total mirrors the page length, not the 15 matches")
}

func TestByCategoryUnknownIsNotFound(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	_, err := svc.ByCategory(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestByCategoryTotalsAreUnpaginated(t *testing.T) {
	cats := &stubCategoryStore{categories: []Category{{ID: 1, Type: "Science"}}}
	qs := &stubQuestionStore{}
	for i := 1; i <= 12; i++ {
		qs.questions = append(qs.questions, Question{ID: i, Question: "q", Category: "1"})
	}
	svc := NewService(cats, qs)

	res, err := svc.ByCategory(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 2)
	assert.Equal(t, 12, res.TotalQuestions)
	assert.Equal(t, "Science", res.CurrentCategory)
}

func TestByCategoryStoreFailureIsBadRequest(t *testing.T) {
	cats := &stubCategoryStore{categories: []Category{{ID: 1, Type: "Science"}}}
	qs := &stubQuestionStore{listErr: errors.New("boom")}
	svc := NewService(cats, qs)

	_, err := svc.ByCategory(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestCreateIsPermissive(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	// No field validation: an entirely empty payload still reaches the store.
	res, err := svc.Create(context.Background(), QuestionInput{}, 1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 6, res.Created)
	assert.Equal(t, 6, res.TotalQuestions)
	assert.Len(t, res.Questions, 6)
}

func TestCreateStoreFailureIsWriteRejected(t *testing.T) {
	cats, qs := seededStores()
	qs.insertErr = errors.New("constraint violation")
	svc := NewService(cats, qs)

	_, err := svc.Create(context.Background(), QuestionInput{Question: "q"}, 1)
	assert.ErrorIs(t, err, ErrWriteRejected)
}

func TestDeleteUnknownIsAlwaysNotFound(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	for i := 0; i < 3; i++ {
		_, err := svc.Delete(context.Background(), 99, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestDeleteRefreshesListing(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	res, err := svc.Delete(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Deleted)
	assert.Equal(t, 4, res.TotalQuestions)
	for _, q := range res.Questions {
		assert.NotEqual(t, 3, q.ID)
	}
}

func TestDeleteStoreFailureIsUnprocessable(t *testing.T) {
	cats, qs := seededStores()
	qs.deleteErr = errors.New("disk on fire")
	svc := NewService(cats, qs)

	_, err := svc.Delete(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestQuizNeverRepeatsAskedQuestions(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	// Category "2" holds ids 1 and 4; with 1 asked, only 4 is eligible.
	for i := 0; i < 50; i++ {
		res, err := svc.NextQuizQuestion(context.Background(), "2", []int{1})
		require.NoError(t, err)
		require.NotNil(t, res.Question)
		assert.Equal(t, 4, res.Question.ID)
	}
}

func TestQuizExhaustionReturnsNilQuestion(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	res, err := svc.NextQuizQuestion(context.Background(), "2", []int{1, 4})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Nil(t, res.Question)
}

func TestQuizUnknownCategoryIsEmptyNotError(t *testing.T) {
	cats, qs := seededStores()
	svc := NewService(cats, qs)

	res, err := svc.NextQuizQuestion(context.Background(), "42", nil)
	require.NoError(t, err)
	assert.Nil(t, res.Question)
}

func TestQuizStoreFailureIsUnprocessable(t *testing.T) {
	cats, qs := seededStores()
	qs.listErr = errors.New("boom")
	svc := NewService(cats, qs)

	_, err := svc.NextQuizQuestion(context.Background(), "1", nil)
	assert.ErrorIs(t, err, ErrUnprocessable)
}
