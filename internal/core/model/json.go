package model

import (
	"encoding/json"
	"fmt"
)

// MarshalData serializes a node payload for storage.
func MarshalData(d NodeData) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to marshal node data: %w", err)
	}
	return string(b), nil
}

// UnmarshalData deserializes a stored payload into the variant for t.
func UnmarshalData(t NodeType, data string) (NodeData, error) {
	var (
		d   NodeData
		err error
	)
	switch t {
	case NodeIdea:
		var v IdeaData
		err = json.Unmarshal([]byte(data), &v)
		d = v
	case NodeFeature:
		var v FeatureData
		err = json.Unmarshal([]byte(data), &v)
		d = v
	case NodeScreen:
		var v ScreenData
		err = json.Unmarshal([]byte(data), &v)
		d = v
	case NodeTechStack:
		var v TechStackData
		err = json.Unmarshal([]byte(data), &v)
		d = v
	case NodePrompt:
		var v PromptData
		err = json.Unmarshal([]byte(data), &v)
		d = v
	default:
		return nil, fmt.Errorf("unknown node type: %s", t)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s data: %w", t, err)
	}
	return d, nil
}

// NodeName returns the primary display name of a payload.
func NodeName(d NodeData) string {
	switch v := d.(type) {
	case IdeaData:
		return v.Title
	case FeatureData:
		return v.Name
	case ScreenData:
		return v.Name
	case TechStackData:
		return v.Name
	case PromptData:
		return v.Title
	}
	return ""
}
