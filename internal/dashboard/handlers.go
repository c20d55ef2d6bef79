package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/parser"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/runner"
	"github.com/Mahen037/Automated-API-Testing-with-an-Agent/internal/specs"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type filesResponse[T any] struct {
	Files []T `json:"files"`
}

type runTestsResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type deleteTestResponse struct {
	Status string `json:"status"`
	File   string `json:"file"`
}

type healthResponse struct {
	Status       string `json:"status"`
	TestsDir     string `json:"testsDir"`
	TestsExist   bool   `json:"testsExist"`
	ReportsExist bool   `json:"reportsExist"`
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("couldn't encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, detail string) {
	s.writeJSON(w, statusCode, errorResponse{Detail: detail})
}

// handleLatestResults serves the latest report parsed into the normalized
// view model. A missing report file is served as an empty no_tests report.
func (s *Server) handleLatestResults(w http.ResponseWriter, req *http.Request) {
	data, err := os.ReadFile(s.cfg.ReportFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.writeJSON(w, http.StatusOK, parser.Parse(parser.EmptyRawReport()))
			return
		}

		s.logger.WithError(err).Error("couldn't read report file")
		s.writeError(w, http.StatusInternalServerError, "failed to read results")

		return
	}

	parsed, err := parser.ParseJSON(data)
	if err != nil {
		s.logger.WithError(err).Error("couldn't parse report file")
		s.writeError(w, http.StatusInternalServerError, "failed to parse results")

		return
	}

	if err := parser.ValidateParsedReport(parsed); err != nil {
		s.logger.WithError(err).Error("parsed report failed validation")
		s.writeError(w, http.StatusInternalServerError, "failed to validate results")

		return
	}

	s.writeJSON(w, http.StatusOK, parsed)
}

// handleRawResults serves the report document exactly as the test runner
// wrote it.
func (s *Server) handleRawResults(w http.ResponseWriter, req *http.Request) {
	data, err := os.ReadFile(s.cfg.ReportFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.writeJSON(w, http.StatusOK, parser.EmptyRawReport())
			return
		}

		s.logger.WithError(err).Error("couldn't read report file")
		s.writeError(w, http.StatusInternalServerError, "failed to read results")

		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Write(data)
}

func (s *Server) handleListTests(w http.ResponseWriter, req *http.Request) {
	files, err := specs.ListSpecFiles(s.cfg.TestsDir)
	if err != nil {
		s.logger.WithError(err).Error("couldn't list spec files")
		s.writeError(w, http.StatusInternalServerError, "failed to list test files")

		return
	}

	s.writeJSON(w, http.StatusOK, filesResponse[specs.SpecFile]{Files: files})
}

func (s *Server) handleListRoutes(w http.ResponseWriter, req *http.Request) {
	files, err := specs.ListRouteFiles(s.cfg.RoutesDir)
	if err != nil {
		s.logger.WithError(err).Error("couldn't list route files")
		s.writeError(w, http.StatusInternalServerError, "failed to list route files")

		return
	}

	s.writeJSON(w, http.StatusOK, filesResponse[specs.RouteFile]{Files: files})
}

func (s *Server) handleRunTests(w http.ResponseWriter, req *http.Request) {
	err := s.runner.Start(s.baseCtx)
	if err != nil {
		if err == runner.ErrRunInProgress {
			s.writeError(w, http.StatusConflict, "A test run is already in progress")
			return
		}

		s.logger.WithError(err).Error("couldn't start test run")
		s.writeError(w, http.StatusInternalServerError, "failed to start test run")

		return
	}

	s.writeJSON(w, http.StatusAccepted, runTestsResponse{
		Status:  "started",
		Message: "Running Playwright tests...",
	})
}

func (s *Server) handleRunStatus(w http.ResponseWriter, req *http.Request) {
	s.writeJSON(w, http.StatusOK, s.runner.State().Snapshot())
}

// handleDeleteTest removes a generated spec file together with its route
// snapshot.
func (s *Server) handleDeleteTest(w http.ResponseWriter, req *http.Request) {
	filename := mux.Vars(req)["filename"]

	err := specs.RemoveSpecFile(s.cfg.TestsDir, s.cfg.RoutesDir, filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("Test file %s not found", filename))
			return
		}

		s.logger.WithError(err).Error("couldn't delete spec file")
		s.writeError(w, http.StatusInternalServerError, "failed to delete test file")

		return
	}

	s.writeJSON(w, http.StatusOK, deleteTestResponse{Status: "deleted", File: filename})
}

func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	_, testsErr := os.Stat(s.cfg.TestsDir)
	_, reportErr := os.Stat(s.cfg.ReportFile)

	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:       "healthy",
		TestsDir:     s.cfg.TestsDir,
		TestsExist:   testsErr == nil,
		ReportsExist: reportErr == nil,
	})
}
