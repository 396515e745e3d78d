package workshop

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// rawSchema is the JSON Schema every workshop definition must satisfy.
// Validation runs on the decoded document, so it applies to YAML and
// JSON configs alike.
const rawSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "string"},
    "harness": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "accountId": {"type": "string"},
        "orgId": {"type": "string"},
        "projectId": {"type": "string"}
      }
    },
    "keycloak": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "endpoint": {"type": "string"},
        "realm": {"type": "string"}
      }
    },
    "users": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["email"],
        "additionalProperties": false,
        "properties": {
          "email": {"type": "string", "minLength": 1},
          "name": {"type": "string"}
        }
      }
    },
    "checks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "type"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "type": {"enum": ["stage", "steps", "workspace"]},
          "stage": {"type": "string"},
          "when": {"type": "string"},
          "expect": {"type": "object"}
        },
        "if": {
          "properties": {"type": {"enum": ["stage", "steps"]}}
        },
        "then": {"required": ["stage"]}
      }
    }
  }
}`

var configSchema = jsonschema.MustCompileString("labkit-config.schema.json", rawSchema)
