package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
	"github.com/shopspring/decimal"
)

// recordService is an in-memory stand-in for the tax-file record service.
// It answers errors in the service's own {timestamp,status,error,message,path}
// shape.
type recordService struct {
	mu    sync.Mutex
	users []taxsdk.User
	files map[string][]taxsdk.TaxFile

	// bulkStatus, when non-zero, fails GET /taxFile/taxUser with that code.
	bulkStatus int
	// usersStatus, when non-zero, fails GET /user with that code.
	usersStatus int
	// createUserMessage, when set, fails POST /user with a 400 and this message.
	createUserMessage string

	events []taxsdk.RefundEvent
	calls  map[string]int
}

func newRecordService() *recordService {
	return &recordService{files: make(map[string][]taxsdk.TaxFile), calls: make(map[string]int)}
}

func (rs *recordService) addUser(id, first, last string) {
	rs.users = append(rs.users, taxsdk.User{UserID: id, FirstName: first, LastName: last})
}

func (rs *recordService) addFile(userID string, year int, refund int64, status taxsdk.RefundStatus) {
	created := taxsdk.NewTimestamp(time.Date(year+1, 3, 1, 10, 0, 0, 0, time.UTC))
	rs.files[userID] = append(rs.files[userID], taxsdk.TaxFile{
		FileID:       "file-" + userID + "-" + strconv.Itoa(year),
		UserID:       userID,
		Year:         year,
		Income:       decimal.NewFromInt(80000),
		Expense:      decimal.NewFromInt(5000),
		TaxRate:      decimal.RequireFromString("0.25"),
		Deducted:     decimal.NewFromInt(20000),
		Refund:       decimal.NewFromInt(refund),
		TaxStatus:    taxsdk.TaxStatusCompleted,
		RefundStatus: status,
		CreatedAt:    created,
		UpdatedAt:    created,
	})
}

func (rs *recordService) count(route string) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.calls[route]
}

func (rs *recordService) receivedEvents() []taxsdk.RefundEvent {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]taxsdk.RefundEvent(nil), rs.events...)
}

func (rs *recordService) start(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	handle := func(pattern string, fn func(w http.ResponseWriter, r *http.Request)) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			rs.mu.Lock()
			defer rs.mu.Unlock()
			rs.calls[pattern]++
			fn(w, r)
		})
	}

	handle("GET /user/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, u := range rs.users {
			if u.UserID == r.PathValue("id") {
				reply(w, http.StatusOK, u)
				return
			}
		}
		springError(w, r, http.StatusNotFound, "User not found")
	})

	handle("GET /user", func(w http.ResponseWriter, r *http.Request) {
		if rs.usersStatus != 0 {
			springError(w, r, rs.usersStatus, "database down")
			return
		}
		reply(w, http.StatusOK, taxsdk.UserList{Users: rs.users, TotalUsers: len(rs.users)})
	})

	handle("POST /user", func(w http.ResponseWriter, r *http.Request) {
		if rs.createUserMessage != "" {
			springError(w, r, http.StatusBadRequest, rs.createUserMessage)
			return
		}
		var req taxsdk.CreateUserRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		u := taxsdk.User{UserID: req.UserID, FirstName: req.FirstName, LastName: req.LastName}
		rs.users = append(rs.users, u)
		reply(w, http.StatusCreated, u)
	})

	handle("GET /taxFile/taxUser", func(w http.ResponseWriter, r *http.Request) {
		if rs.bulkStatus != 0 {
			springError(w, r, rs.bulkStatus, "bulk listing unavailable")
			return
		}
		userID := r.URL.Query().Get("userId")
		out := taxsdk.TaxUserFiles{UserID: userID, TaxFiles: []taxsdk.TaxFileSummary{}}
		for _, f := range rs.files[userID] {
			out.TaxFiles = append(out.TaxFiles, f.Summary())
		}
		out.TotalFiles = len(out.TaxFiles)
		reply(w, http.StatusOK, out)
	})

	handle("GET /taxFile", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		for _, f := range rs.files[q.Get("userId")] {
			if strconv.Itoa(f.Year) == q.Get("year") {
				reply(w, http.StatusOK, f)
				return
			}
		}
		springError(w, r, http.StatusNotFound, "Tax file not found")
	})

	handle("POST /taxFile", func(w http.ResponseWriter, r *http.Request) {
		var req taxsdk.CreateTaxFileRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		reply(w, http.StatusCreated, taxsdk.TaxFile{
			FileID:    "file-new",
			UserID:    req.UserID,
			Year:      req.Year,
			Income:    req.Income,
			Expense:   req.Expense,
			TaxRate:   req.TaxRate,
			Deducted:  req.Deducted,
			Refund:    req.Refund,
			TaxStatus: taxsdk.TaxStatusPending,
		})
	})

	handle("GET /refund", func(w http.ResponseWriter, r *http.Request) {
		fileID := r.URL.Query().Get("fileId")
		for _, files := range rs.files {
			for _, f := range files {
				if f.FileID == fileID {
					reply(w, http.StatusOK, taxsdk.Refund{
						FileID: f.FileID, UserID: f.UserID, Year: f.Year, RefundStatus: f.RefundStatus,
					})
					return
				}
			}
		}
		springError(w, r, http.StatusNotFound, "Refund not found")
	})

	handle("POST /processRefundEvent", func(w http.ResponseWriter, r *http.Request) {
		var e taxsdk.RefundEvent
		_ = json.NewDecoder(r.Body).Decode(&e)
		for _, files := range rs.files {
			for _, f := range files {
				if f.FileID == e.FileID {
					rs.events = append(rs.events, e)
					w.WriteHeader(http.StatusAccepted)
					return
				}
			}
		}
		springError(w, r, http.StatusNotFound, "Tax file not found")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func reply(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func springError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	reply(w, code, map[string]any{
		"timestamp": "2025-01-01T00:00:00",
		"status":    code,
		"error":     http.StatusText(code),
		"message":   msg,
		"path":      r.URL.Path,
	})
}
