package reportdelivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/integrationtest/helpers"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newServer(t *testing.T, buildStubs func(s *MockService)) *gin.Engine {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	buildStubs(service)

	h := NewHandler(service)

	server := gin.New()
	server.GET("/reports/summary", h.Summary)
	server.GET("/reports/closed-accounts", h.ClosedAccounts)

	return server
}

func get(t *testing.T, server *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func TestSummary(t *testing.T) {
	totals := domain.SummaryTotals{
		TotalClients:          3,
		ClientsWithDebt:       1,
		ClientsSettled:        1,
		ClientsWithoutAccount: 1,
		TotalOutstanding:      decimal.NewFromInt(200),
	}

	testCases := []struct {
		name           string
		buildStubs     func(s *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			buildStubs: func(s *MockService) {
				s.EXPECT().Summary(gomock.Any()).Times(1).Return(totals, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "InternalServerError",
			buildStubs: func(s *MockService) {
				s.EXPECT().Summary(gomock.Any()).Times(1).Return(domain.SummaryTotals{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			recorder := get(t, newServer(t, tc.buildStubs), "/reports/summary")

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			got := &struct {
				Summary domain.SummaryTotals `json:"summary"`
			}{}

			res := web.Response{Data: got}
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
				}

				return
			}

			if diff := cmp.Diff(totals, got.Summary); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClosedAccounts(t *testing.T) {
	clientID := uuid.NewString()
	account := helpers.RandomAccount(clientID)
	closedAt := account.OpenedAt.Add(time.Hour)
	account.Status = domain.AccountClosed
	account.ClosedAt = &closedAt
	account.UpdatedAt = closedAt

	groups := []domain.ClosedAccountGroup{
		{ClientID: clientID, ClientName: "Ana", Accounts: []domain.Account{account}},
	}

	server := newServer(t, func(s *MockService) {
		s.EXPECT().ClosedAccounts(gomock.Any()).Times(1).Return(groups, nil)
	})

	recorder := get(t, server, "/reports/closed-accounts")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Status code: got %v, want %v", recorder.Code, http.StatusOK)
	}

	got := &struct {
		Groups []domain.ClosedAccountGroup `json:"groups"`
	}{}
	if err := json.NewDecoder(recorder.Body).Decode(&web.Response{Data: got}); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	if diff := cmp.Diff(groups, got.Groups, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
	}
}
