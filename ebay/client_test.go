package ebay_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopswift/ebay-autolister/ebay"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// ---- fake marketplace ----

type fakeEbay struct {
	srv *httptest.Server

	tokenCalls  int
	apiCalls    int
	tokenStatus int
	apiHandler  http.HandlerFunc

	basicID     string
	basicSecret string
	grantType   string
	scope       string
}

func newFakeEbay(apiHandler http.HandlerFunc) *fakeEbay {
	f := &fakeEbay{tokenStatus: http.StatusOK, apiHandler: apiHandler}

	mux := http.NewServeMux()
	mux.HandleFunc("/identity/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls++
		f.basicID, f.basicSecret, _ = r.BasicAuth()
		_ = r.ParseForm()
		f.grantType = r.PostForm.Get("grant_type")
		f.scope = r.PostForm.Get("scope")

		if f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			fmt.Fprint(w, `{"error":"invalid_client"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":7200}`)
	})
	mux.HandleFunc("/sell/inventory/v1/", func(w http.ResponseWriter, r *http.Request) {
		f.apiCalls++
		if f.apiHandler != nil {
			f.apiHandler(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	f.srv = httptest.NewServer(mux)
	return f
}

func (f *fakeEbay) close() { f.srv.Close() }

func (f *fakeEbay) newClient() *ebay.Client {
	return ebay.NewClient(ebay.Config{
		ClientID:           "test-client-id",
		ClientSecret:       "test-client-secret",
		Sandbox:            true,
		BaseURL:            f.srv.URL,
		TokenURL:           f.srv.URL + "/identity/v1/oauth2/token",
		MinRequestInterval: time.Millisecond,
	}, zap.NewNop())
}

// ---- tests ----

func TestAuthenticate_UsesClientCredentialsWithBasicAuth(t *testing.T) {
	f := newFakeEbay(nil)
	defer f.close()

	err := f.newClient().Authenticate()

	assert.NoError(t, err)
	assert.Equal(t, 1, f.tokenCalls)
	assert.Equal(t, "test-client-id", f.basicID)
	assert.Equal(t, "test-client-secret", f.basicSecret)
	assert.Equal(t, "client_credentials", f.grantType)
	assert.Equal(t, ebay.ScopeSellInventory, f.scope)
}

func TestAuthenticate_Failure(t *testing.T) {
	f := newFakeEbay(nil)
	defer f.close()
	f.tokenStatus = http.StatusUnauthorized

	err := f.newClient().Authenticate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestDo_SendsBearerTokenAndJSONHeaders(t *testing.T) {
	var gotAuth, gotContentType, gotPath string
	f := newFakeEbay(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	defer f.close()

	err := f.newClient().Do(context.Background(), http.MethodPut, "/inventory_item/SKU-1",
		map[string]string{"condition": "NEW"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/sell/inventory/v1/inventory_item/SKU-1", gotPath)
}

func TestDo_ReusesCachedToken(t *testing.T) {
	f := newFakeEbay(nil)
	defer f.close()
	client := f.newClient()

	assert.NoError(t, client.Do(context.Background(), http.MethodGet, "/inventory_item/A", nil, nil))
	assert.NoError(t, client.Do(context.Background(), http.MethodGet, "/inventory_item/B", nil, nil))

	assert.Equal(t, 1, f.tokenCalls)
	assert.Equal(t, 2, f.apiCalls)
}

func TestDo_DecodesResponseBody(t *testing.T) {
	f := newFakeEbay(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"offerId":"offer-123"}`)
	})
	defer f.close()

	var out ebay.OfferResponse
	err := f.newClient().Do(context.Background(), http.MethodPost, "/offer", ebay.Offer{SKU: "SKU-1"}, &out)

	assert.NoError(t, err)
	assert.Equal(t, "offer-123", out.OfferID)
}

func TestDo_EmptyResponseBodyLeavesOutUntouched(t *testing.T) {
	f := newFakeEbay(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer f.close()

	var out ebay.PublishResponse
	err := f.newClient().Do(context.Background(), http.MethodPost, "/offer/1/publish", nil, &out)

	assert.NoError(t, err)
	assert.Equal(t, "", out.ListingID)
}

func TestDo_NonSuccessStatusReturnsAPIError(t *testing.T) {
	f := newFakeEbay(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"errors":[{"message":"invalid sku"}]}`)
	})
	defer f.close()

	err := f.newClient().Do(context.Background(), http.MethodPost, "/offer", ebay.Offer{}, nil)

	var apiErr *ebay.APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "invalid sku")
	}
	assert.Contains(t, err.Error(), "status 400")
}

func TestDo_AuthFailureBlocksRequest(t *testing.T) {
	f := newFakeEbay(nil)
	defer f.close()
	f.tokenStatus = http.StatusUnauthorized

	err := f.newClient().Do(context.Background(), http.MethodGet, "/inventory_item/A", nil, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
	assert.Equal(t, 0, f.apiCalls)
}

func TestDo_RejectsUnsupportedMethod(t *testing.T) {
	f := newFakeEbay(nil)
	defer f.close()

	err := f.newClient().Do(context.Background(), http.MethodPatch, "/inventory_item/A", nil, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported HTTP method")
	assert.Equal(t, 0, f.tokenCalls)
}

func TestDo_EnforcesMinimumRequestSpacing(t *testing.T) {
	f := newFakeEbay(nil)
	defer f.close()

	client := ebay.NewClient(ebay.Config{
		ClientID:           "id",
		ClientSecret:       "secret",
		Sandbox:            true,
		BaseURL:            f.srv.URL,
		TokenURL:           f.srv.URL + "/identity/v1/oauth2/token",
		MinRequestInterval: 60 * time.Millisecond,
	}, zap.NewNop())

	start := time.Now()
	assert.NoError(t, client.Do(context.Background(), http.MethodGet, "/inventory_item/A", nil, nil))
	assert.NoError(t, client.Do(context.Background(), http.MethodGet, "/inventory_item/B", nil, nil))
	elapsed := time.Since(start)

	assert.True(t, elapsed >= 60*time.Millisecond, "second request fired after %v", elapsed)
}

func TestNewClient_EnvironmentBaseURLs(t *testing.T) {
	sandbox := ebay.NewClient(ebay.Config{ClientID: "id", ClientSecret: "s", Sandbox: true}, zap.NewNop())
	production := ebay.NewClient(ebay.Config{ClientID: "id", ClientSecret: "s"}, zap.NewNop())

	assert.Equal(t, ebay.SandboxAPIBaseURL, sandbox.BaseURL())
	assert.Equal(t, ebay.ProductionAPIBaseURL, production.BaseURL())
}
