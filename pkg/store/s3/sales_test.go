package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectGetter struct {
	mock.Mock
}

func (m *MockObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func objectFor(bucket, key string) interface{} {
	return mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return in.Bucket != nil && *in.Bucket == bucket && in.Key != nil && *in.Key == key
	})
}

func TestSource_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		client := new(MockObjectGetter)
		client.On("GetObject", mock.Anything, objectFor("sales", "2025/march.json")).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader(`{"sales":[{"id":"1","date":"2025-03-01","amount":10}]}`)),
		}, nil)

		records, err := NewSource(client, "sales", "2025/march.json").Load(ctx)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "1", records[0].ID)
		client.AssertExpectations(t)
	})

	t.Run("client error", func(t *testing.T) {
		client := new(MockObjectGetter)
		client.On("GetObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

		_, err := NewSource(client, "sales", "missing.json").Load(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "s3://sales/missing.json")
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("bad payload", func(t *testing.T) {
		client := new(MockObjectGetter)
		client.On("GetObject", mock.Anything, mock.Anything).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader(`not json`)),
		}, nil)

		_, err := NewSource(client, "sales", "bad.json").Load(ctx)
		assert.Error(t, err)
	})
}
