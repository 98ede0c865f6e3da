package viz

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Service posts plot payloads to a sidecar plotting application over HTTP.
// It starts disabled so a trainer can wire it unconditionally and only turn
// it on when the sidecar is actually running.
type Service struct {
	baseURL    string
	httpClient *http.Client
	enabled    bool
}

// ServiceConfig configures the sidecar client.
type ServiceConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// DefaultServiceConfig targets a local sidecar with a generous timeout.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		BaseURL: "http://localhost:8080",
		Timeout: 30 * time.Second,
	}
}

func NewService(config ServiceConfig) *Service {
	return &Service{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

func (s *Service) Enable()         { s.enabled = true }
func (s *Service) Disable()        { s.enabled = false }
func (s *Service) IsEnabled() bool { return s.enabled }

// Send posts one payload to the sidecar's /plot endpoint. A disabled service
// drops the payload silently.
func (s *Service) Send(pd PlotData) error {
	if !s.enabled {
		return nil
	}

	body, err := json.Marshal(pd)
	if err != nil {
		return errors.Wrap(err, "marshaling plot data")
	}

	resp, err := s.httpClient.Post(s.baseURL+"/plot", "application/json", bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "posting %s plot", pd.PlotType)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("plotting service returned %s", resp.Status)
	}
	return nil
}

// Recorder writes plot payloads as JSON lines, one per Send. Useful for tests
// and for replaying a training run's diagnostics later.
type Recorder struct {
	enc *json.Encoder
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: json.NewEncoder(w)}
}

func (r *Recorder) Send(pd PlotData) error {
	return errors.Wrap(r.enc.Encode(pd), "recording plot data")
}
