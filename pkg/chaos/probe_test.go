package chaos

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "latency", want: "latency"},
		{name: "spaces to underscores", in: "http latency check", want: "http_latency_check"},
		{name: "dashes dropped", in: "pre-deploy-probe", want: "predeployprobe"},
		{name: "mixed", in: "cart-service health", want: "cartservice_health"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProbeID(tt.in))
		})
	}
}

func TestAddProbe(t *testing.T) {
	var gotReq graphQLRequest
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = decodeRequest(t, r)
		_, _ = w.Write([]byte(`{"data": {"addProbe": {"name": "cart-service health", "type": "httpProbe"}}}`))
	})

	scope := Scope{OrgID: "default", ProjectID: "workshop"}
	err := c.AddProbe(context.Background(), scope, "cart-service health", map[string]any{
		"url": "http://cart.svc.cluster.local/health",
	})
	require.NoError(t, err)

	assert.Contains(t, gotReq.Query, "mutation addProbe")
	request := gotReq.Variables["request"].(map[string]any)
	assert.Equal(t, "cart-service health", request["name"])
	assert.Equal(t, "cartservice_health", request["probeID"])
	assert.Equal(t, "httpProbe", request["type"])
	assert.Equal(t, "Kubernetes", request["infrastructureType"])

	props := request["kubernetesHTTPProperties"].(map[string]any)
	assert.Equal(t, "http://cart.svc.cluster.local/health", props["url"], "override wins")
	assert.Equal(t, "10s", props["probeTimeout"], "default survives")
	assert.Equal(t, "5s", props["interval"])
	method := props["method"].(map[string]any)
	get := method["get"].(map[string]any)
	assert.Equal(t, "==", get["criteria"])
	assert.Equal(t, "200", get["responseCode"])
}

func TestAddProbeFailure(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors": [{"message": "probe already exists"}]}`))
	})

	err := c.AddProbe(context.Background(), Scope{OrgID: "o", ProjectID: "p"}, "dup", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "probe already exists")
}
