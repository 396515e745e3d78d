package chaos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationDocuments(t *testing.T) {
	tests := []struct {
		name     string
		op       operation
		contains []string
	}{
		{
			name: "register infra",
			op:   opRegisterInfra,
			contains: []string{
				"mutation registerInfra($request: RegisterInfraRequest!, $identifiers: IdentifiersRequest!)",
				"registerInfra(request: $request, identifiers: $identifiers) { manifest }",
			},
		},
		{
			name: "add probe",
			op:   opAddProbe,
			contains: []string{
				"mutation addProbe($request: ProbeRequest!",
				"{ name type }",
			},
		},
		{
			name: "list infra",
			op:   opListInfra,
			contains: []string{
				"query listInfrasV2($request: ListInfraRequest,",
				"totalNoOfInfras",
				"infras { infraID name environmentID platformName infraNamespace serviceAccount infraScope installationType }",
			},
		},
		{
			name: "infra manifest",
			op:   opInfraManifest,
			contains: []string{
				"query getInfraManifest($infraID: String!",
				"getInfraManifest(infraID: $infraID, identifiers: $identifiers)",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := tt.op.document()
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, doc, want)
			}
		})
	}
}

func TestOperationDocumentRejectsUnknownField(t *testing.T) {
	bad := operation{
		kind:      "query",
		name:      "listInfrasV2",
		paramKey:  "request",
		paramType: "ListInfraRequest",
		selection: "{ noSuchField }",
	}
	_, err := bad.document()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid listInfrasV2 document")
}

func TestOperationDocumentRejectsUnknownType(t *testing.T) {
	bad := operation{
		kind:      "mutation",
		name:      "registerInfra",
		paramKey:  "request",
		paramType: "BogusRequest!",
		selection: "{ manifest }",
	}
	_, err := bad.document()
	require.Error(t, err)
}
