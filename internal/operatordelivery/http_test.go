package operatordelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestLogin(t *testing.T) {
	expiresAt := time.Now().Add(15 * time.Minute).UTC().Truncate(time.Second)

	type requestBody struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(s *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "OK",
			requestBody: requestBody{Username: "admin", Password: "secret123"},
			buildStubs: func(s *MockService) {
				s.EXPECT().Login(gomock.Any(), gomock.Eq("admin"), gomock.Eq("secret123")).
					Times(1).
					Return("token", expiresAt, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "WrongCredentials",
			requestBody: requestBody{Username: "admin", Password: "wrong-pass"},
			buildStubs: func(s *MockService) {
				s.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return("", time.Time{}, domain.ErrWrongCredentials)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrWrongCredentials.Error(),
		},
		{
			name:        "ShortPassword",
			requestBody: requestBody{Username: "admin", Password: "123"},
			buildStubs: func(s *MockService) {
				s.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Password must be at least 6 characters long",
		},
		{
			name:        "MissingUsername",
			requestBody: requestBody{Password: "secret123"},
			buildStubs: func(s *MockService) {
				s.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Username field is required",
		},
		{
			name:        "InternalServerError",
			requestBody: requestBody{Username: "admin", Password: "secret123"},
			buildStubs: func(s *MockService) {
				s.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return("", time.Time{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := gin.New()
			server.POST("/operators/login", NewHandler(service).Login)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/operators/login", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			var res web.Response
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
				}

				return
			}

			if res.AccessToken != "token" {
				t.Errorf("res.AccessToken = %q, want %q", res.AccessToken, "token")
			}

			if res.AccessTokenExpiresAt != expiresAt.Format(time.RFC3339) {
				t.Errorf("res.AccessTokenExpiresAt = %q, want %q", res.AccessTokenExpiresAt, expiresAt.Format(time.RFC3339))
			}
		})
	}
}
