package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Store_SaveJSONRoundTrip(t *testing.T) {
	client := NewMockS3Client()
	store := NewS3ArtifactStoreWithClient(client, "qa-artifacts", "qraft")
	ctx := context.Background()

	original := map[string]interface{}{
		"plan_context": map[string]interface{}{"purpose": "p", "in_scope": "i", "out_of_scope": "o"},
		"requirements": []interface{}{},
	}

	path := "output/prd_clean_agile/intake_output.json"
	require.NoError(t, store.SaveJSON(ctx, path, original))

	reloaded, err := store.LoadJSON(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, original, reloaded)

	// The prefix maps into the object key.
	assert.Contains(t, client.ObjectKeys(), "qraft/output/prd_clean_agile/intake_output.json")
}

func TestS3Store_SaveTextContentType(t *testing.T) {
	client := NewMockS3Client()
	store := NewS3ArtifactStoreWithClient(client, "qa-artifacts", "")

	require.NoError(t, store.SaveText(context.Background(), "output/run/test_plan.md", "## Purpose\n"))

	obj, exists := client.objects["output/run/test_plan.md"]
	require.True(t, exists)
	assert.Equal(t, "## Purpose\n", string(obj.content))
	assert.Equal(t, "text/plain; charset=utf-8", obj.contentType)
}

func TestS3Store_LoadJSONMissingKey(t *testing.T) {
	store := NewS3ArtifactStoreWithClient(NewMockS3Client(), "qa-artifacts", "")

	_, err := store.LoadJSON(context.Background(), "absent.json")
	assert.Error(t, err)
}
