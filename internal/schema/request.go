package schema

// RequestSchema describes the document accepted by the inference endpoint.
const RequestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "inference request",
  "type": "object",
  "required": ["VarDb", "op"],
  "properties": {
    "VarDb": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "uniqueItems": true
    },
    "FactorSet": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["vars", "head"],
        "properties": {
          "vars": {"type": "array", "items": {"type": "string"}},
          "head": {"type": "array", "items": {"type": "string"}, "minItems": 1, "maxItems": 1},
          "vals": {"type": "array", "items": {"type": "number"}}
        }
      }
    },
    "QueryVarSet": {
      "type": "array",
      "items": {"type": "string"}
    },
    "SampleClause": {
      "type": "object",
      "required": ["varset", "values"],
      "properties": {
        "varset": {"type": "array", "items": {"type": "string"}},
        "values": {"type": "array", "items": {"type": "integer", "minimum": 0, "maximum": 1}}
      }
    },
    "op": {"type": "string", "enum": ["MAP", "MPE"]}
  }
}`
