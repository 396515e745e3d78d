package chaos

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = "apiVersion: v1\nkind: Namespace\nmetadata:\n  name: hce\n"

func TestRegisterInfra(t *testing.T) {
	t.Run("merges defaults under overrides", func(t *testing.T) {
		var gotReq graphQLRequest
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotReq = decodeRequest(t, r)
			_, _ = w.Write([]byte(`{"data": {"registerInfra": {"manifest": "apiVersion: v1\nkind: Namespace\nmetadata:\n  name: hce\n"}}}`))
		})

		scope := Scope{OrgID: "default", ProjectID: "workshop"}
		manifest, err := c.RegisterInfra(context.Background(), scope, "lab-infra", "dev", map[string]any{
			"infraNamespace": "custom",
		})
		require.NoError(t, err)
		assert.Equal(t, sampleManifest, string(manifest))

		assert.Contains(t, gotReq.Query, "mutation registerInfra")
		request := gotReq.Variables["request"].(map[string]any)
		assert.Equal(t, "lab-infra", request["name"])
		assert.Equal(t, "dev", request["environmentID"])
		assert.Equal(t, "custom", request["infraNamespace"], "override wins")
		assert.Equal(t, "Kubernetes", request["platformName"], "default survives")
		assert.Equal(t, "namespace", request["infraScope"])
		assert.Equal(t, "MANIFEST", request["installationType"])
		assert.Equal(t, true, request["infraNsExists"])
		assert.Equal(t, false, request["isAutoUpgradeEnabled"])
	})

	t.Run("rejects a bad manifest", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": {"registerInfra": {"manifest": "{{not yaml"}}}`))
		})

		_, err := c.RegisterInfra(context.Background(), Scope{OrgID: "o", ProjectID: "p"}, "lab-infra", "dev", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad manifest")
	})
}

func TestListInfra(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"listInfrasV2": {"totalNoOfInfras": 2, "infras": [
			{"infraID": "i-1", "name": "alpha", "environmentID": "dev", "platformName": "Kubernetes",
			 "infraNamespace": "hce", "serviceAccount": "hce", "infraScope": "namespace", "installationType": "MANIFEST"},
			{"infraID": "i-2", "name": "beta", "environmentID": "qa", "platformName": "Kubernetes",
			 "infraNamespace": "hce", "serviceAccount": "hce", "infraScope": "cluster", "installationType": "MANIFEST"}
		]}}}`))
	})

	infras, err := c.ListInfra(context.Background(), Scope{OrgID: "default", ProjectID: "workshop"})
	require.NoError(t, err)
	require.Len(t, infras, 2)
	assert.Equal(t, "i-1", infras[0].InfraID)
	assert.Equal(t, "alpha", infras[0].Name)
	assert.Equal(t, "namespace", infras[0].InfraScope)
	assert.Equal(t, "beta", infras[1].Name)
	assert.Equal(t, "cluster", infras[1].InfraScope)
}

func TestInfraManifest(t *testing.T) {
	listBody := `{"data": {"listInfrasV2": {"totalNoOfInfras": 1, "infras": [
		{"infraID": "i-42", "name": "lab-infra", "environmentID": "dev", "platformName": "Kubernetes",
		 "infraNamespace": "hce", "serviceAccount": "hce", "infraScope": "namespace", "installationType": "MANIFEST"}
	]}}}`

	t.Run("resolves name then fetches", func(t *testing.T) {
		var manifestReq graphQLRequest
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			req := decodeRequest(t, r)
			switch {
			case strings.Contains(req.Query, "listInfrasV2"):
				_, _ = w.Write([]byte(listBody))
			case strings.Contains(req.Query, "getInfraManifest"):
				manifestReq = req
				_, _ = w.Write([]byte(`{"data": {"getInfraManifest": "apiVersion: v1\nkind: Namespace\nmetadata:\n  name: hce\n"}}`))
			}
		})

		manifest, err := c.InfraManifest(context.Background(), Scope{OrgID: "default", ProjectID: "workshop"}, "lab-infra")
		require.NoError(t, err)
		assert.Equal(t, sampleManifest, string(manifest))
		assert.Equal(t, "i-42", manifestReq.Variables["infraID"], "resolved id rides the second call")
	})

	t.Run("unknown name is not found", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(listBody))
		})

		_, err := c.InfraManifest(context.Background(), Scope{OrgID: "default", ProjectID: "workshop"}, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
