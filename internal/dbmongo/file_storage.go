package dbmongo

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FileStorage stores attachment blobs in GridFS. The core only manages
// attachment metadata and linkage; this is the byte-level collaborator.
type FileStorage struct {
	gridFS *gridfs.Bucket
}

func NewFileStorage(mongoClient *MongoClient) *FileStorage {
	return &FileStorage{
		gridFS: mongoClient.GridFS,
	}
}

// Store uploads the content and returns the storage locator.
func (fs *FileStorage) Store(ctx context.Context, filename, contentType, uploaderID string, content io.Reader) (string, int64, error) {
	metadata := bson.M{
		"content_type": contentType,
		"uploaded_by":  uploaderID,
		"uploaded_at":  time.Now().UTC(),
	}

	opts := options.GridFSUpload().SetMetadata(metadata)
	stream, err := fs.gridFS.OpenUploadStream(filename, opts)
	if err != nil {
		return "", 0, fmt.Errorf("upload failed: %w", err)
	}
	defer stream.Close()

	size, err := io.Copy(stream, content)
	if err != nil {
		return "", 0, fmt.Errorf("file copy failed: %w", err)
	}

	return stream.FileID.(primitive.ObjectID).Hex(), size, nil
}

// Retrieve opens a read stream for the locator returned by Store.
func (fs *FileStorage) Retrieve(ctx context.Context, storageID string) (io.ReadCloser, error) {
	objectID, err := primitive.ObjectIDFromHex(storageID)
	if err != nil {
		return nil, fmt.Errorf("invalid storage id: %w", err)
	}

	stream, err := fs.gridFS.OpenDownloadStream(objectID)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	return stream, nil
}

func (fs *FileStorage) Delete(ctx context.Context, storageID string) error {
	objectID, err := primitive.ObjectIDFromHex(storageID)
	if err != nil {
		return fmt.Errorf("invalid storage id: %w", err)
	}
	return fs.gridFS.Delete(objectID)
}
