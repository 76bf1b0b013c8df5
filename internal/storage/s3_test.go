package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
		want     string
	}{
		{"empty uses AWS resolution", "", true, ""},
		{"bare host with ssl", "minio.local:9000", true, "https://minio.local:9000"},
		{"bare host without ssl", "minio.local:9000", false, "http://minio.local:9000"},
		{"scheme is kept", "http://localhost:9000", true, "http://localhost:9000"},
		{"whitespace trimmed", " s3.example.com ", true, "https://s3.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, endpointURL(tt.endpoint, tt.useSSL))
		})
	}
}

func TestExerciseMediaKey(t *testing.T) {
	trainer, exercise := primitive.NewObjectID(), primitive.NewObjectID()

	key := ExerciseMediaKey(trainer, exercise)
	assert.True(t, strings.HasPrefix(key, "exercises/"+trainer.Hex()+"/"+exercise.Hex()+"/"))
	assert.NotEqual(t, key, ExerciseMediaKey(trainer, exercise))
}
