package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Abdulsz/toxic-chat-classifier-api/internal/domain/entity"
)

// MockToxicityUsecase is a mock implementation of usecase.ToxicityUsecase
type MockToxicityUsecase struct {
	mock.Mock
}

func (m *MockToxicityUsecase) Analyze(ctx context.Context, text string) (*entity.Classification, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Classification), args.Error(1)
}

func (m *MockToxicityUsecase) AnalyzeBatch(ctx context.Context, texts []string) ([]*entity.Classification, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Classification), args.Error(1)
}

func newClassifyRouter(uc *MockToxicityUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewClassifyHandler(uc)
	router := gin.New()
	router.POST("/api/v1/classify", h.Classify)
	router.POST("/api/v1/classify/batch", h.ClassifyBatch)
	return router
}

func TestClassifyHandler_Classify(t *testing.T) {
	t.Run("classifies text", func(t *testing.T) {
		uc := new(MockToxicityUsecase)
		uc.On("Analyze", mock.Anything, "you are awful").
			Return(entity.NewClassification("you are awful", 0.81, 0.19), nil)

		router := newClassifyRouter(uc)

		body := bytes.NewBufferString(`{"text": "you are awful"}`)
		req, _ := http.NewRequest("POST", "/api/v1/classify", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)

		data, err := json.Marshal(response.Data)
		require.NoError(t, err)
		var result entity.Classification
		require.NoError(t, json.Unmarshal(data, &result))
		assert.True(t, result.IsToxic)
		assert.Equal(t, 0.81, result.ToxicScore)
		assert.Equal(t, 0.81, result.Confidence)
	})

	t.Run("missing text returns 400 without classifying", func(t *testing.T) {
		uc := new(MockToxicityUsecase)
		router := newClassifyRouter(uc)

		body := bytes.NewBufferString(`{"other": "field"}`)
		req, _ := http.NewRequest("POST", "/api/v1/classify", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Success)
		assert.Equal(t, "INVALID_REQUEST", response.Error.Code)
		assert.Contains(t, response.Error.Message, "text")

		uc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	})

	t.Run("empty text is classified", func(t *testing.T) {
		uc := new(MockToxicityUsecase)
		uc.On("Analyze", mock.Anything, "").
			Return(entity.NewClassification("", 0.1, 0.9), nil)

		router := newClassifyRouter(uc)

		body := bytes.NewBufferString(`{"text": ""}`)
		req, _ := http.NewRequest("POST", "/api/v1/classify", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertCalled(t, "Analyze", mock.Anything, "")
	})

	t.Run("invalid JSON returns 400", func(t *testing.T) {
		uc := new(MockToxicityUsecase)
		router := newClassifyRouter(uc)

		body := bytes.NewBufferString(`not json`)
		req, _ := http.NewRequest("POST", "/api/v1/classify", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("usecase failure returns 500", func(t *testing.T) {
		uc := new(MockToxicityUsecase)
		uc.On("Analyze", mock.Anything, "text").
			Return(nil, errors.New("error loading model: listing failed"))

		router := newClassifyRouter(uc)

		body := bytes.NewBufferString(`{"text": "text"}`)
		req, _ := http.NewRequest("POST", "/api/v1/classify", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "INTERNAL_ERROR", response.Error.Code)
		assert.Contains(t, response.Error.Message, "listing failed")
	})
}

func TestClassifyHandler_ClassifyBatch(t *testing.T) {
	t.Run("classifies multiple texts", func(t *testing.T) {
		uc := new(MockToxicityUsecase)
		uc.On("AnalyzeBatch", mock.Anything, []string{"a", "b"}).
			Return([]*entity.Classification{
				entity.NewClassification("a", 0.7, 0.3),
				entity.NewClassification("b", 0.2, 0.8),
			}, nil)

		router := newClassifyRouter(uc)

		body := bytes.NewBufferString(`{"texts": ["a", "b"]}`)
		req, _ := http.NewRequest("POST", "/api/v1/classify/batch", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Success)

		data := response.Data.(map[string]interface{})
		assert.Equal(t, float64(2), data["count"])
	})

	t.Run("empty batch returns 400", func(t *testing.T) {
		uc := new(MockToxicityUsecase)
		router := newClassifyRouter(uc)

		body := bytes.NewBufferString(`{"texts": []}`)
		req, _ := http.NewRequest("POST", "/api/v1/classify/batch", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "AnalyzeBatch", mock.Anything, mock.Anything)
	})
}
