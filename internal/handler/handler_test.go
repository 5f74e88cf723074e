package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/expense-tracker-api/internal/config"
	"github.com/vasapolrittideah/expense-tracker-api/internal/model"
	"github.com/vasapolrittideah/expense-tracker-api/internal/repository"
	"github.com/vasapolrittideah/expense-tracker-api/internal/usecase"
	"github.com/vasapolrittideah/expense-tracker-api/shared/auth"
	"github.com/vasapolrittideah/expense-tracker-api/shared/provider"
	"github.com/vasapolrittideah/expense-tracker-api/shared/validation"
)

func testTokenConfig() config.TokenConfig {
	return config.TokenConfig{
		Issuer:                      "expense-tracker-api",
		AccessTokenSecret:           "access-secret",
		AccessTokenExpiresIn:        time.Hour,
		PasswordResetTokenSecret:    "reset-secret",
		PasswordResetTokenExpiresIn: 15 * time.Minute,
	}
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key error"}},
	}
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyError()
		}
	}

	user.ID = bson.NewObjectID()
	stored := *user
	f.users[user.ID.Hex()] = &stored

	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Email != nil {
		for otherID, other := range f.users {
			if otherID != id && other.Email == *params.Email {
				return nil, duplicateKeyError()
			}
		}
		user.Email = *params.Email
	}
	if params.FullName != nil {
		user.FullName = *params.FullName
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.ProfileImageURL != nil {
		url := *params.ProfileImageURL
		user.ProfileImageURL = &url
	}

	copied := *user
	return &copied, nil
}

type fakeIncomeRepo struct {
	incomes []*model.Income
}

func (f *fakeIncomeRepo) CreateIncome(_ context.Context, income *model.Income) (*model.Income, error) {
	income.ID = bson.NewObjectID()
	stored := *income
	f.incomes = append(f.incomes, &stored)

	return income, nil
}

func (f *fakeIncomeRepo) ListIncomes(
	_ context.Context,
	userID string,
	params repository.FilterEntriesParams,
) ([]*model.Income, error) {
	var matched []*model.Income
	for _, income := range f.incomes {
		if income.UserID.Hex() != userID {
			continue
		}
		if params.Since != nil && income.Date.Before(*params.Since) {
			continue
		}
		copied := *income
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	if params.Limit > 0 && int64(len(matched)) > params.Limit {
		matched = matched[:params.Limit]
	}

	return matched, nil
}

func (f *fakeIncomeRepo) DeleteIncome(_ context.Context, userID, id string) error {
	for i, income := range f.incomes {
		if income.ID.Hex() == id && income.UserID.Hex() == userID {
			f.incomes = append(f.incomes[:i], f.incomes[i+1:]...)
			return nil
		}
	}

	return mongo.ErrNoDocuments
}

func (f *fakeIncomeRepo) TotalIncomeAmount(
	ctx context.Context,
	userID string,
	since *time.Time,
) (float64, error) {
	matched, err := f.ListIncomes(ctx, userID, repository.FilterEntriesParams{Since: since})
	if err != nil {
		return 0, err
	}

	var total float64
	for _, income := range matched {
		total += income.Amount
	}

	return total, nil
}

type fakeExpenseRepo struct {
	expenses []*model.Expense
}

func (f *fakeExpenseRepo) CreateExpense(_ context.Context, expense *model.Expense) (*model.Expense, error) {
	expense.ID = bson.NewObjectID()
	stored := *expense
	f.expenses = append(f.expenses, &stored)

	return expense, nil
}

func (f *fakeExpenseRepo) ListExpenses(
	_ context.Context,
	userID string,
	params repository.FilterEntriesParams,
) ([]*model.Expense, error) {
	var matched []*model.Expense
	for _, expense := range f.expenses {
		if expense.UserID.Hex() != userID {
			continue
		}
		if params.Since != nil && expense.Date.Before(*params.Since) {
			continue
		}
		copied := *expense
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

	if params.Limit > 0 && int64(len(matched)) > params.Limit {
		matched = matched[:params.Limit]
	}

	return matched, nil
}

func (f *fakeExpenseRepo) DeleteExpense(_ context.Context, userID, id string) error {
	for i, expense := range f.expenses {
		if expense.ID.Hex() == id && expense.UserID.Hex() == userID {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}

	return mongo.ErrNoDocuments
}

func (f *fakeExpenseRepo) TotalExpenseAmount(
	ctx context.Context,
	userID string,
	since *time.Time,
) (float64, error) {
	matched, err := f.ListExpenses(ctx, userID, repository.FilterEntriesParams{Since: since})
	if err != nil {
		return 0, err
	}

	var total float64
	for _, expense := range matched {
		total += expense.Amount
	}

	return total, nil
}

type fakeResetTokenRepo struct {
	tokens map[string]*model.PasswordResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: make(map[string]*model.PasswordResetToken)}
}

func (f *fakeResetTokenRepo) CreateToken(
	_ context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	token.ID = bson.NewObjectID()
	stored := *token
	f.tokens[token.JTI] = &stored

	return token, nil
}

func (f *fakeResetTokenRepo) GetTokenByJTI(_ context.Context, jti string) (*model.PasswordResetToken, error) {
	token, ok := f.tokens[jti]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *token
	return &copied, nil
}

func (f *fakeResetTokenRepo) MarkTokenAsUsed(_ context.Context, jti string) error {
	if token, ok := f.tokens[jti]; ok {
		token.Used = true
	}

	return nil
}

func (f *fakeResetTokenRepo) InvalidateUserTokens(_ context.Context, userID string) error {
	for _, token := range f.tokens {
		if token.UserID.Hex() == userID {
			token.Used = true
		}
	}

	return nil
}

type fakeGoogleProvider struct{}

func (fakeGoogleProvider) ValidateIDToken(context.Context, string) (*provider.GoogleIdentity, error) {
	return nil, provider.ErrInvalidGoogleAudience
}

type fakeMailer struct{}

func (fakeMailer) SendHTML([]string, string, string) error { return nil }

type fakeUploader struct {
	calls int
	url   string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, _ io.Reader) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}

	return f.url, nil
}

type testEnv struct {
	router   *chi.Mux
	userRepo *fakeUserRepo
	uploader *fakeUploader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.Nop()
	tokenCfg := testTokenConfig()
	jwtAuth := auth.NewJWTAuthenticator(tokenCfg.Issuer, tokenCfg.Issuer)

	validator, err := validation.New()
	require.NoError(t, err)

	userRepo := newFakeUserRepo()
	incomeRepo := &fakeIncomeRepo{}
	expenseRepo := &fakeExpenseRepo{}
	uploader := &fakeUploader{url: "https://res.cloudinary.example/avatar.png"}

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth, fakeGoogleProvider{}, tokenCfg)
	userUsecase := usecase.NewUserUsecase(userRepo)
	incomeUsecase := usecase.NewIncomeUsecase(incomeRepo)
	expenseUsecase := usecase.NewExpenseUsecase(expenseRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(incomeRepo, expenseRepo)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(
		userRepo,
		newFakeResetTokenRepo(),
		jwtAuth,
		fakeMailer{},
		tokenCfg,
		"https://app.example/reset-password",
	)

	router := NewRouter(RouterParams{
		AuthHandler:      NewAuthHandler(authUsecase, passwordResetUsecase, validator, &logger),
		UserHandler:      NewUserHandler(userUsecase, validator, &logger),
		UploadHandler:    NewUploadHandler(uploader, &logger),
		IncomeHandler:    NewIncomeHandler(incomeUsecase, validator, &logger),
		ExpenseHandler:   NewExpenseHandler(expenseUsecase, validator, &logger),
		DashboardHandler: NewDashboardHandler(dashboardUsecase, &logger),

		JWTAuth:           jwtAuth,
		AccessTokenSecret: tokenCfg.AccessTokenSecret,
		Logger:            &logger,
	})

	return &testEnv{
		router:   router,
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	return rec
}

func (e *testEnv) register(t *testing.T, fullName, email, password string) (string, string) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/register", "", map[string]any{
		"fullName": fullName,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	return resp.ID, resp.Token
}

func (e *testEnv) uploadImage(t *testing.T, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="avatar"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	return rec
}
