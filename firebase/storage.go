package firebase

import "mime/multipart"

// StorageClient abstracts Firebase Storage operations for dependency injection and testing.
type StorageClient interface {
	UploadServiceImage(file multipart.File, filename, contentType string) (string, error)
	UploadBannerImage(file multipart.File, filename, contentType string) (string, error)
	DeleteFile(objectPath string) error
	ObjectPathFromURL(rawURL string) (string, bool)
}

// FirebaseStorageClient is the real implementation that delegates to package-level functions.
type FirebaseStorageClient struct{}

func NewStorageClient() StorageClient {
	return &FirebaseStorageClient{}
}

func (f *FirebaseStorageClient) UploadServiceImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadServiceImage(file, filename, contentType)
}

func (f *FirebaseStorageClient) UploadBannerImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadBannerImage(file, filename, contentType)
}

func (f *FirebaseStorageClient) DeleteFile(objectPath string) error {
	return DeleteFile(objectPath)
}

func (f *FirebaseStorageClient) ObjectPathFromURL(rawURL string) (string, bool) {
	return ObjectPathFromURL(rawURL)
}
