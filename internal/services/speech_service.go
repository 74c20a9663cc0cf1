package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ortholink/exercise-service/internal/models"
)

// ErrSpeechUnavailable means no audio could be produced. Callers must degrade
// silently: speech is a collaborator, never a gate on any exercise state.
var ErrSpeechUnavailable = errors.New("speech synthesis unavailable")

// SpeechService synthesizes the spoken form of exercise text for the listen
// buttons. Results are cached per (text, language).
type SpeechService interface {
	Synthesize(ctx context.Context, text string, language models.Language) ([]byte, string, error)
}

type speechService struct {
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.Mutex
	cache map[string][]byte
}

func NewSpeechService(apiKey string, logger *slog.Logger) SpeechService {
	return &speechService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		cache:      make(map[string][]byte),
	}
}

func (s *speechService) Synthesize(ctx context.Context, text string, language models.Language) ([]byte, string, error) {
	key := cacheKey(text, language)

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return cached, "audio/mpeg", nil
	}

	if s.apiKey == "" {
		return nil, "", ErrSpeechUnavailable
	}

	audio, err := s.callGoogleTTS(ctx, text, language)
	if err != nil {
		s.logger.Warn("speech synthesis failed", "text", text, "error", err)
		return nil, "", ErrSpeechUnavailable
	}

	s.mu.Lock()
	s.cache[key] = audio
	s.mu.Unlock()

	return audio, "audio/mpeg", nil
}

func (s *speechService) callGoogleTTS(ctx context.Context, text string, language models.Language) ([]byte, error) {
	url := "https://texttospeech.googleapis.com/v1/text:synthesize?key=" + s.apiKey

	langCode := "ar-XA"
	if language == models.LanguageEnglish {
		langCode = "en-US"
	}

	reqBody := map[string]interface{}{
		"input": map[string]string{
			"text": text,
		},
		"voice": map[string]interface{}{
			"languageCode": langCode,
			"ssmlGender":   "FEMALE",
		},
		"audioConfig": map[string]string{
			"audioEncoding": "MP3",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return audio, nil
}

func cacheKey(text string, language models.Language) string {
	h := sha256.Sum256([]byte(string(language) + ":" + text))
	return hex.EncodeToString(h[:16])
}
