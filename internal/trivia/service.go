package trivia

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
)

// categoryStore is the persistence surface for categories.
type categoryStore interface {
	ListOrdered(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int) (Category, error)
}

// questionStore is the persistence surface for questions. All listing results
// come back ordered by ascending id.
type questionStore interface {
	ListOrdered(ctx context.Context) ([]Question, error)
	ListByCategory(ctx context.Context, category string) ([]Question, error)
	Search(ctx context.Context, term string) ([]Question, error)
	GetByID(ctx context.Context, id int) (Question, error)
	Insert(ctx context.Context, q Question) (int, error)
	Delete(ctx context.Context, id int) error
}

// Service implements the question-bank query, mutation, and quiz operations.
type Service struct {
	categories categoryStore
	questions  questionStore
}

func NewService(categories categoryStore, questions questionStore) *Service {
	return &Service{categories: categories, questions: questions}
}

// CategoriesResult is the payload of the category listing.
type CategoriesResult struct {
	Success    bool        `json:"success"`
	Categories CategoryMap `json:"categories"`
}

// QuestionPage is the payload of the paginated question listing.
type QuestionPage struct {
	Success         bool        `json:"success"`
	Questions       []Question  `json:"questions"`
	Categories      CategoryMap `json:"categories"`
	TotalQuestions  int         `json:"total_questions"`
	CurrentCategory *string     `json:"current_category"`
}

// SearchResult is the payload of a question search.
type SearchResult struct {
	Success        bool       `json:"success"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

// CategoryQuestions is the payload of the per-category listing.
type CategoryQuestions struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory string     `json:"current_category"`
}

// CreateResult is the payload returned after a successful create.
type CreateResult struct {
	Success        bool       `json:"success"`
	Created        int        `json:"created"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

// DeleteResult is the payload returned after a successful delete.
type DeleteResult struct {
	Success        bool       `json:"success"`
	Deleted        int        `json:"deleted"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

// QuizResult carries the next quiz question. A nil Question means the category
// is exhausted; that is a success, not an error.
type QuizResult struct {
	Success  bool      `json:"success"`
	Question *Question `json:"question"`
}

// QuestionInput carries the create payload. Fields pass through to the store
// as given; missing fields arrive as zero values. The permissiveness is
// deliberate: only a store-level rejection fails a create.
type QuestionInput struct {
	Question   string      `json:"question"`
	Answer     string      `json:"answer"`
	Category   CategoryRef `json:"category"`
	Difficulty int         `json:"difficulty"`
}

// Categories returns the full category table as an ordered id→type mapping.
// An empty table reports ErrNotFound; a failing lookup is ErrBadRequest.
func (s *Service) Categories(ctx context.Context) (CategoriesResult, error) {
	cats, err := s.categories.ListOrdered(ctx)
	if err != nil {
		return CategoriesResult{}, classify(ErrBadRequest, err)
	}
	if len(cats) == 0 {
		return CategoriesResult{}, ErrNotFound
	}
	return CategoriesResult{Success: true, Categories: CategoryMap(cats)}, nil
}

// Questions returns one page of the full question table together with the
// category mapping and the unfiltered total. A page with no rows is
// ErrNotFound whether the table is empty or the page lies past the data; the
// two cases are intentionally not distinguished.
func (s *Service) Questions(ctx context.Context, page int) (QuestionPage, error) {
	all, err := s.questions.ListOrdered(ctx)
	if err != nil {
		return QuestionPage{}, classify(ErrNotFound, err)
	}
	current := paginate(page, QuestionsPerPage, all)
	if len(current) == 0 {
		return QuestionPage{}, ErrNotFound
	}
	cats, err := s.categories.ListOrdered(ctx)
	if err != nil {
		return QuestionPage{}, classify(ErrNotFound, err)
	}
	return QuestionPage{
		Success:        true,
		Questions:      current,
		Categories:     CategoryMap(cats),
		TotalQuestions: len(all),
	}, nil
}

// Search matches the trimmed term case-insensitively as a substring of the
// question text; an empty term matches everything. Zero matches is a success
// with an empty list. TotalQuestions reflects the returned page, not the full
// match count.
func (s *Service) Search(ctx context.Context, term string, page int) (SearchResult, error) {
	matches, err := s.questions.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		return SearchResult{}, classify(ErrWriteRejected, err)
	}
	current := paginate(page, QuestionsPerPage, matches)
	return SearchResult{
		Success:        true,
		Questions:      current,
		TotalQuestions: len(current),
	}, nil
}

// ByCategory lists the questions of one category, paginated. The category must
// exist; TotalQuestions is the full filtered count, not the page length.
func (s *Service) ByCategory(ctx context.Context, id, page int) (CategoryQuestions, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CategoryQuestions{}, ErrNotFound
		}
		return CategoryQuestions{}, classify(ErrBadRequest, err)
	}
	filtered, err := s.questions.ListByCategory(ctx, strconv.Itoa(id))
	if err != nil {
		return CategoryQuestions{}, classify(ErrBadRequest, err)
	}
	return CategoryQuestions{
		Success:         true,
		Questions:       paginate(page, QuestionsPerPage, filtered),
		TotalQuestions:  len(filtered),
		CurrentCategory: cat.Type,
	}, nil
}

// Create inserts a question and returns the assigned id plus the refreshed
// page. Input is not validated here; a store rejection maps to
// ErrWriteRejected.
func (s *Service) Create(ctx context.Context, in QuestionInput, page int) (CreateResult, error) {
	id, err := s.questions.Insert(ctx, Question{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	})
	if err != nil {
		return CreateResult{}, classify(ErrWriteRejected, err)
	}
	all, err := s.questions.ListOrdered(ctx)
	if err != nil {
		return CreateResult{}, classify(ErrWriteRejected, err)
	}
	return CreateResult{
		Success:        true,
		Created:        id,
		Questions:      paginate(page, QuestionsPerPage, all),
		TotalQuestions: len(all),
	}, nil
}

// Delete removes a question by id and returns the refreshed page. Deleting an
// unknown id is always ErrNotFound; any other failure maps to
// ErrUnprocessable.
func (s *Service) Delete(ctx context.Context, id, page int) (DeleteResult, error) {
	if _, err := s.questions.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DeleteResult{}, ErrNotFound
		}
		return DeleteResult{}, classify(ErrUnprocessable, err)
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DeleteResult{}, ErrNotFound
		}
		return DeleteResult{}, classify(ErrUnprocessable, err)
	}
	all, err := s.questions.ListOrdered(ctx)
	if err != nil {
		return DeleteResult{}, classify(ErrUnprocessable, err)
	}
	return DeleteResult{
		Success:        true,
		Deleted:        id,
		Questions:      paginate(page, QuestionsPerPage, all),
		TotalQuestions: len(all),
	}, nil
}

// NextQuizQuestion picks one question uniformly at random among those whose
// category token matches and whose id is not in previous. The quiz session is
// client-held: callers grow previous across calls until nil signals
// exhaustion.
func (s *Service) NextQuizQuestion(ctx context.Context, category CategoryRef, previous []int) (QuizResult, error) {
	pool, err := s.questions.ListByCategory(ctx, category.String())
	if err != nil {
		return QuizResult{}, classify(ErrUnprocessable, err)
	}
	asked := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		asked[id] = struct{}{}
	}
	var eligible []Question
	for _, q := range pool {
		if _, seen := asked[q.ID]; !seen {
			eligible = append(eligible, q)
		}
	}
	if len(eligible) == 0 {
		return QuizResult{Success: true}, nil
	}
	picked := eligible[rand.IntN(len(eligible))]
	return QuizResult{Success: true, Question: &picked}, nil
}
