package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	appmw "github.com/Pratyasha-Tapaja/cbpmodel/internal/http/middleware"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/intensity"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/metrics"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/prediction"
)

// Client-facing messages. Validation failures never say which field failed.
const (
	MsgRunning        = "Calorie Predictor API is running."
	MsgInvalidInput   = "Invalid or missing input. Please check your JSON payload."
	MsgNegativeWeight = "Weight must not be negative."
	MsgPredictFailed  = "Prediction failed."
)

const maxBodyBytes = 1 << 20

type Server struct {
	Router      *chi.Mux
	Predictions *prediction.Service
}

type ServerOptions struct {
	Logger         zerolog.Logger
	Predictions    *prediction.Service
	MetricsEnabled bool
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(appmw.RequestID)
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(chimw.RealIP)
	// Instrument sits outside Recoverer so recovered panics are counted as 500s.
	r.Use(appmw.Instrument)
	r.Use(chimw.Recoverer)

	s := &Server{Router: r, Predictions: opts.Predictions}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(MsgRunning))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("write health check response")
		}
	})

	r.Post("/predict", s.handlePredict)
	r.Post("/intensity", s.handleIntensity)
	r.Get("/intensity/tiers", s.handleTiers)

	if opts.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return s
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	req, err := prediction.DecodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.rejectInput(w, r, err)
		return
	}

	res, err := s.Predictions.Predict(r.Context(), req)
	if err != nil {
		if errors.Is(err, prediction.ErrNegativeWeight) {
			s.rejectInput(w, r, err)
			return
		}
		metrics.RecordFailure(metrics.ReasonModel)
		log.Error().Err(err).Msg("prediction failed")
		writeError(w, http.StatusInternalServerError, MsgPredictFailed)
		return
	}

	metrics.RecordPrediction(res.Intensity.Tier.Level)
	log.Debug().
		Float64("raw_index", res.Intensity.RawIndex).
		Float64("scaled_index", res.Intensity.ScaledIndex).
		Str("intensity_level", res.Intensity.Tier.Level).
		Float64("predicted_calories", res.Calories).
		Msg("prediction served")
	writeJSON(w, http.StatusOK, prediction.NewResponse(res))
}

// IntensityResponse is returned by POST /intensity.
type IntensityResponse struct {
	RawIntensityIndex    float64  `json:"raw_intensity_index"`
	ScaledIntensityIndex float64  `json:"scaled_intensity_index"`
	IntensityLevel       string   `json:"intensity_level"`
	IntensityDescription string   `json:"intensity_description"`
	IntensityExamples    []string `json:"intensity_examples"`
}

func (s *Server) handleIntensity(w http.ResponseWriter, r *http.Request) {
	req, err := prediction.DecodeIntensityRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.rejectInput(w, r, err)
		return
	}

	res, err := intensity.Evaluate(req.HeartRate, req.Duration, req.Weight)
	if err != nil {
		s.rejectInput(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, IntensityResponse{
		RawIntensityIndex:    res.RawIndex,
		ScaledIntensityIndex: res.ScaledIndex,
		IntensityLevel:       res.Tier.Level,
		IntensityDescription: res.Tier.Description,
		IntensityExamples:    res.Tier.Examples,
	})
}

func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, intensity.Tiers())
}

func (s *Server) rejectInput(w http.ResponseWriter, r *http.Request, err error) {
	log := hlog.FromRequest(r)
	if errors.Is(err, prediction.ErrNegativeWeight) {
		metrics.RecordFailure(metrics.ReasonDomain)
		log.Debug().Err(err).Msg("rejected negative weight")
		writeError(w, http.StatusBadRequest, MsgNegativeWeight)
		return
	}
	metrics.RecordFailure(metrics.ReasonValidation)
	log.Debug().Err(err).Msg("rejected invalid input")
	writeError(w, http.StatusBadRequest, MsgInvalidInput)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
