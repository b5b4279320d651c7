package viewer

// configSchema is the JSON schema YAML config files are validated against.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "debug": {"type": "boolean"},
    "scale": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "initial": {"type": "number", "exclusiveMinimum": 0},
        "min": {"type": "number", "minimum": 0},
        "max": {"type": "number", "minimum": 0}
      }
    },
    "alignment": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "x": {"type": "number", "minimum": -1, "maximum": 1},
        "y": {"type": "number", "minimum": -1, "maximum": 1}
      }
    },
    "behavior": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "scroll_mode": {"enum": ["both", "horizontal", "vertical", "none"]},
        "axis_lock": {"enum": ["free", "x", "y", "dominant"]},
        "constrain_bounds": {"type": "boolean"},
        "grid_x": {"type": "number", "minimum": 0},
        "grid_y": {"type": "number", "minimum": 0},
        "scale_step": {"type": "number", "minimum": 0}
      }
    },
    "animation": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "duration_ms": {"type": "integer", "minimum": 0},
        "curve": {"type": "string"}
      }
    },
    "gesture": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "double_tap_zoom": {"type": "number", "minimum": 0},
        "scroll_zoom_factor": {"type": "number", "minimum": 0},
        "key_pan_step": {"type": "number", "minimum": 0},
        "disable_rotation": {"type": "boolean"},
        "disable_fling": {"type": "boolean"}
      }
    },
    "logging": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"enum": ["debug", "info", "warn", "error"]},
        "format": {"enum": ["text", "json"]},
        "source": {"type": "boolean"},
        "file": {"type": "string"}
      }
    }
  }
}`
