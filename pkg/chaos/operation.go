package chaos

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// apiSchema models the slice of the chaos manager API this client calls.
// Generated documents are validated against it before they go on the wire,
// so a bad builder fails in the caller instead of as a remote 400.
const apiSchema = `
input IdentifiersRequest {
  accountIdentifier: String!
  orgIdentifier: String!
  projectIdentifier: String!
}

input RegisterInfraRequest {
  name: String!
  environmentID: String!
  description: String
  platformName: String!
  infraNamespace: String
  serviceAccount: String
  infraScope: String!
  infraNsExists: Boolean
  installationType: String
  isAutoUpgradeEnabled: Boolean
  skipSsl: Boolean
  tags: [String!]
}

input ProbeRequest {
  name: String!
  probeID: String!
  type: String!
  infrastructureType: String!
  description: String
  tags: [String!]
  kubernetesHTTPProperties: KubernetesHTTPProbeRequest
}

input KubernetesHTTPProbeRequest {
  probeTimeout: String!
  interval: String!
  retry: Int
  attempt: Int
  probePollingInterval: String
  initialDelay: String
  stopOnFailure: Boolean
  url: String!
  method: MethodRequest!
  insecureSkipVerify: Boolean
}

input MethodRequest {
  get: GETRequest
  post: POSTRequest
}

input GETRequest {
  criteria: String!
  responseCode: String!
}

input POSTRequest {
  contentType: String
  body: String
  criteria: String!
  responseCode: String!
}

input ListInfraRequest {
  environmentIDs: [String!]
}

type InfraRegistration {
  token: String!
  infraID: String!
  name: String!
  manifest: String!
}

type Probe {
  name: String!
  type: String!
}

type InfraDetails {
  infraID: String!
  name: String!
  environmentID: String
  platformName: String!
  infraNamespace: String
  serviceAccount: String
  infraScope: String!
  installationType: String!
}

type InfraList {
  totalNoOfInfras: Int!
  infras: [InfraDetails]!
}

type Query {
  listInfrasV2(request: ListInfraRequest, identifiers: IdentifiersRequest!): InfraList!
  getInfraManifest(infraID: String!, identifiers: IdentifiersRequest!): String!
}

type Mutation {
  registerInfra(request: RegisterInfraRequest!, identifiers: IdentifiersRequest!): InfraRegistration!
  addProbe(request: ProbeRequest!, identifiers: IdentifiersRequest!): Probe!
}
`

var schema = gqlparser.MustLoadSchema(&ast.Source{Name: "chaos", Input: apiSchema})

// operation describes one entry in the request catalog: which field it
// calls, how its payload variable is typed, and what it selects from the
// result.
type operation struct {
	kind      string // "query" or "mutation"
	name      string // root field, doubles as the operation name
	paramKey  string
	paramType string
	selection string
}

var (
	opRegisterInfra = operation{
		kind:      "mutation",
		name:      "registerInfra",
		paramKey:  "request",
		paramType: "RegisterInfraRequest!",
		selection: "{ manifest }",
	}
	opAddProbe = operation{
		kind:      "mutation",
		name:      "addProbe",
		paramKey:  "request",
		paramType: "ProbeRequest!",
		selection: "{ name type }",
	}
	opListInfra = operation{
		kind:      "query",
		name:      "listInfrasV2",
		paramKey:  "request",
		paramType: "ListInfraRequest",
		selection: "{ totalNoOfInfras infras { infraID name environmentID platformName infraNamespace serviceAccount infraScope installationType } }",
	}
	opInfraManifest = operation{
		kind:      "query",
		name:      "getInfraManifest",
		paramKey:  "infraID",
		paramType: "String!",
		selection: "",
	}
)

// document renders the operation as a GraphQL document and validates it
// against the API schema.
func (op operation) document() (string, error) {
	doc := fmt.Sprintf("%s %s($%s: %s, $identifiers: IdentifiersRequest!) { %s(%s: $%s, identifiers: $identifiers) %s }",
		op.kind, op.name, op.paramKey, op.paramType, op.name, op.paramKey, op.paramKey, op.selection)

	if _, errs := gqlparser.LoadQuery(schema, doc); len(errs) > 0 {
		return "", fmt.Errorf("invalid %s document: %s", op.name, errs[0].Message)
	}
	return doc, nil
}
