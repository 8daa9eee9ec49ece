package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
)

// sasTTL is how long upload and read SAS URLs stay valid.
const sasTTL = 10 * time.Minute

type AzureStore struct {
	client    *azblob.Client
	cred      *azblob.SharedKeyCredential
	account   string
	container string
}

func NewAzureStore(client *azblob.Client, cred *azblob.SharedKeyCredential, account, container string) *AzureStore {
	return &AzureStore{
		client:    client,
		cred:      cred,
		account:   account,
		container: container,
	}
}

func (s *AzureStore) blobBaseURL(blobName string) string {
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s", s.account, s.container, blobName)
}

func (s *AzureStore) SignUpload(blobName string) (*UploadTicket, error) {
	expiresOn := time.Now().UTC().Add(sasTTL)

	values := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		ExpiryTime:    expiresOn,
		Permissions:   (&sas.BlobPermissions{Create: true, Write: true}).String(),
		ContainerName: s.container,
		BlobName:      blobName,
	}

	params, err := values.SignWithSharedKey(s.cred)
	if err != nil {
		return nil, fmt.Errorf("failed to sign upload SAS: %v", err)
	}

	blobURL := s.blobBaseURL(blobName)
	return &UploadTicket{
		UploadURL: blobURL + "?" + params.Encode(),
		BlobURL:   blobURL,
		BlobName:  blobName,
		ExpiresOn: expiresOn,
	}, nil
}

func (s *AzureStore) SignRead(blobURL string) (*ReadTicket, error) {
	_, blobName, err := parseBlobURL(blobURL)
	if err != nil {
		return nil, err
	}

	expiresOn := time.Now().UTC().Add(sasTTL)

	values := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		ExpiryTime:    expiresOn,
		Permissions:   (&sas.BlobPermissions{Read: true}).String(),
		ContainerName: s.container,
		BlobName:      blobName,
	}

	params, err := values.SignWithSharedKey(s.cred)
	if err != nil {
		return nil, fmt.Errorf("failed to sign read SAS: %v", err)
	}

	return &ReadTicket{
		ReadURL:   s.blobBaseURL(blobName) + "?" + params.Encode(),
		ExpiresOn: expiresOn,
	}, nil
}

// Download uses the account key, so it works against private containers where
// an anonymous GET would return an error page instead of the blob bytes.
func (s *AzureStore) Download(ctx context.Context, blobURL string) (io.ReadCloser, error) {
	container, blobName, err := parseBlobURL(blobURL)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.DownloadStream(ctx, container, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download blob %s: %v", blobName, err)
	}
	return resp.Body, nil
}

func (s *AzureStore) Delete(ctx context.Context, blobURL string) error {
	container, blobName, err := parseBlobURL(blobURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteBlob(ctx, container, blobName, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete blob %s: %v", blobName, err)
	}
	return nil
}

// parseBlobURL splits a bare blob URL into container and blob name.
// Expected shape: https://{account}.blob.core.windows.net/{container}/{blobName...}
func parseBlobURL(blobURL string) (string, string, error) {
	u, err := url.Parse(blobURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid blob URL: %v", err)
	}

	parts := strings.SplitN(strings.TrimLeft(u.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("blob URL is missing container or blob name: %s", blobURL)
	}
	return parts[0], parts[1], nil
}
