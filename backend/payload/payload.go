package payload

import "encoding/json"

// Payload is a serialized input, output, or content value.
type Payload = json.RawMessage
