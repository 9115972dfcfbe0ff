package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"wordlens/internal/domain"
	apperrors "wordlens/pkg/errors"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servePage(t *testing.T, router http.Handler, req *http.Request) (*httptest.ResponseRecorder, *goquery.Document) {
	t.Helper()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rr.Body.String()))
	require.NoError(t, err)
	return rr, doc
}

func TestUIHandler_Index(t *testing.T) {
	router := newTestRouter(&mockAnalysisService{}, newMockConfig())

	rr, doc := servePage(t, router, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, doc.Find("h1").Text(), "Word Cloud + Charts from PDF")
	assert.Equal(t, "Please upload a PDF file to begin.", doc.Find("#info").Text())
	assert.Equal(t, 1, doc.Find(`form#upload input[type="file"][name="file"]`).Length())
	assert.Equal(t, 0, doc.Find("form#settings").Length())
	assert.Equal(t, 0, doc.Find("img").Length())
}

func TestUIHandler_UploadWithoutFile(t *testing.T) {
	svc := &mockAnalysisService{}
	router := newTestRouter(svc, newMockConfig())

	rr, doc := servePage(t, router, newUploadRequest(t, "/", "", nil, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Please upload a PDF file to begin.", doc.Find("#info").Text())
	assert.Nil(t, svc.lastReq)
}

func TestUIHandler_UploadRejectsNonPDF(t *testing.T) {
	svc := &mockAnalysisService{}
	router := newTestRouter(svc, newMockConfig())

	rr, doc := servePage(t, router, newUploadRequest(t, "/", "notes.txt", []byte("hello"), nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, doc.Find("#error").Text(), "Unsupported file type")
	assert.Nil(t, svc.lastReq)
}

func TestUIHandler_UploadTooLarge(t *testing.T) {
	svc := &mockAnalysisService{}
	cfg := &mockConfig{maxFileSize: 16}
	router := newTestRouter(svc, cfg)

	rr, doc := servePage(t, router, newUploadRequest(t, "/", "big.pdf", []byte(strings.Repeat("x", 64)), nil))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, doc.Find("#error").Text(), "File too large")
	assert.Nil(t, svc.lastReq)
}

func TestUIHandler_UploadRendersVisualizations(t *testing.T) {
	svc := &mockAnalysisService{result: renderedResult()}
	router := newTestRouter(svc, newMockConfig())

	req := newUploadRequest(t, "/", "Cats.PDF", []byte("%PDF-1.4"), map[string]string{
		"max_words":  "300",
		"background": "black",
		"stopwords":  "cat",
	})
	rr, doc := servePage(t, router, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, svc.lastReq)
	require.NotNil(t, svc.lastReq.Document)
	assert.Equal(t, "Cats.PDF", svc.lastReq.Document.Filename)
	assert.Equal(t, []byte("%PDF-1.4"), svc.lastReq.Document.Data)
	assert.Equal(t, "cat", svc.lastReq.ExtraStopwords)
	assert.Equal(t, 300, svc.lastReq.Params.MaxWords)
	assert.Equal(t, domain.BackgroundBlack, svc.lastReq.Params.Background)
	assert.Equal(t, domain.DefaultWidth, svc.lastReq.Params.Width)
	assert.True(t, svc.lastReq.IncludeImages)

	settings := doc.Find("form#settings")
	require.Equal(t, 1, settings.Length())
	text, _ := settings.Find(`input[name="text"]`).Attr("value")
	assert.Equal(t, "the cat sat on the mat the cat ran", text)
	selected, _ := settings.Find("option[selected]").Attr("value")
	assert.Equal(t, "black", selected)
	maxWords, _ := settings.Find(`input[name="max_words"]`).Attr("value")
	assert.Equal(t, "300", maxWords)
	stopwords, _ := settings.Find(`input[name="stopwords"]`).Attr("value")
	assert.Equal(t, "cat", stopwords)

	images := doc.Find("section.visualization img")
	require.Equal(t, 3, images.Length())
	ids := []string{}
	doc.Find("section.visualization").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
	})
	assert.Equal(t, []string{"cloud", "bar", "pie"}, ids)
	src, _ := images.First().Attr("src")
	assert.Equal(t, "data:image/png;base64,Y2xvdWQ=", src)
}

func TestUIHandler_UploadExtractionError(t *testing.T) {
	svc := &mockAnalysisService{result: &domain.AnalysisResult{
		Filename: "broken.pdf",
		Error:    "PDF error: not a PDF file",
		Warning:  domain.WarningNoText,
	}}
	router := newTestRouter(svc, newMockConfig())

	rr, doc := servePage(t, router, newUploadRequest(t, "/", "broken.pdf", []byte("nope"), nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "PDF error: not a PDF file", doc.Find("#error").Text())
	assert.Equal(t, "No text found in the PDF.", doc.Find("#warning").Text())
	assert.Equal(t, 0, doc.Find("form#settings").Length())
	assert.Equal(t, 0, doc.Find("img").Length())
}

func TestUIHandler_NoWordsKeepsSettings(t *testing.T) {
	svc := &mockAnalysisService{result: &domain.AnalysisResult{
		Text:    "the and of",
		Warning: domain.WarningNoWords,
		Params:  domain.DefaultRenderParameters(),
	}}
	router := newTestRouter(svc, newMockConfig())

	_, doc := servePage(t, router, newUploadRequest(t, "/", "stop.pdf", []byte("%PDF"), nil))

	assert.Equal(t, domain.WarningNoWords, doc.Find("#warning").Text())
	assert.Equal(t, 1, doc.Find("form#settings").Length())
	assert.Equal(t, 0, doc.Find("img").Length())
}

func TestUIHandler_InvalidSettings(t *testing.T) {
	svc := &mockAnalysisService{}
	router := newTestRouter(svc, newMockConfig())

	for field, value := range map[string]string{"width": "5000", "height": "tall", "background": "purple"} {
		req := newUploadRequest(t, "/", "cats.pdf", []byte("%PDF"), map[string]string{field: value})
		rr, doc := servePage(t, router, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, field)
		assert.Contains(t, doc.Find("#error").Text(), field)
	}
	assert.Nil(t, svc.lastReq)
}

func TestUIHandler_InternalErrorHidesCause(t *testing.T) {
	svc := &mockAnalysisService{err: apperrors.NewInternalError("failed to render cloud", assert.AnError)}
	router := newTestRouter(svc, newMockConfig())

	rr, doc := servePage(t, router, newUploadRequest(t, "/", "cats.pdf", []byte("%PDF"), nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, doc.Find("#error").Text(), assert.AnError.Error())
}

func TestUIHandler_Rerender(t *testing.T) {
	svc := &mockAnalysisService{result: renderedResult()}
	router := newTestRouter(svc, newMockConfig())

	form := url.Values{
		"text":       {"the cat sat on the mat the cat ran"},
		"filename":   {"cats.pdf"},
		"stopwords":  {"mat"},
		"width":      {"640"},
		"height":     {"480"},
		"background": {"lightgrey"},
	}
	rr, doc := servePage(t, router, newFormRequest("/render", form))

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, svc.lastReq)
	assert.Nil(t, svc.lastReq.Document)
	assert.Equal(t, "the cat sat on the mat the cat ran", svc.lastReq.Text)
	assert.Equal(t, "mat", svc.lastReq.ExtraStopwords)
	assert.Equal(t, domain.RenderParameters{
		MaxWords:   domain.DefaultMaxWords,
		Width:      640,
		Height:     480,
		Background: domain.BackgroundLightGrey,
	}, svc.lastReq.Params)
	assert.Equal(t, 3, doc.Find("img").Length())
}

func TestUIHandler_RerenderWithoutText(t *testing.T) {
	svc := &mockAnalysisService{}
	router := newTestRouter(svc, newMockConfig())

	rr, doc := servePage(t, router, newFormRequest("/render", url.Values{"width": {"640"}}))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Please upload a PDF file to begin.", doc.Find("#info").Text())
	assert.Nil(t, svc.lastReq)
}
