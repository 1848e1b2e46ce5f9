/*
Copyright © 2013 the fieldsfile authors.
This file is part of fieldsfile.

fieldsfile is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

fieldsfile is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with fieldsfile.  If not, see <http://www.gnu.org/licenses/>.
*/

package ffutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/google/go-cloud/blob"
	"github.com/google/go-cloud/blob/fileblob"
	"github.com/google/go-cloud/blob/gcsblob"
	"github.com/google/go-cloud/blob/s3blob"
	"github.com/google/go-cloud/gcp"
	"github.com/sirupsen/logrus"
)

// downloader fetches remote input files into a temporary directory.
type downloader struct {
	dir string
}

// maybeDownload checks if the input is an existing local file.
// If not, and the path is a URL or a blob storage location, it downloads
// the file and returns the path to the downloaded copy. Any other path is
// returned unchanged.
func (d *downloader) maybeDownload(ctx context.Context, path string) (string, error) {
	// Check if local file exists. If it does, return the given path.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return path, nil
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return d.downloadHTTP(ctx, path)
	}
	if IsBlob(path) {
		return d.downloadBlob(ctx, path)
	}
	return path, nil
}

// create creates the local file a download of the given remote
// path is written to.
func (d *downloader) create(remote string) (*os.File, error) {
	if d.dir == "" {
		dir, err := os.MkdirTemp("", "fieldsfile")
		if err != nil {
			return nil, fmt.Errorf("ffutil: failed creating temporary download directory: %v", err)
		}
		d.dir = dir
	}
	name := path.Base(remote)
	if name == "." || name == "/" {
		name = "download"
	}
	w, err := os.Create(filepath.Join(d.dir, name))
	if err != nil {
		return nil, fmt.Errorf("ffutil: failed creating file for download: %v", err)
	}
	return w, nil
}

// downloadHTTP downloads a file from the specified URL and returns
// the path to the downloaded file.
func (d *downloader) downloadHTTP(ctx context.Context, path string) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("ffutil: parsing url '%s': %v", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", fmt.Errorf("ffutil: downloading '%s': %v", path, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ffutil: downloading '%s': %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ffutil: downloading '%s': %s", path, resp.Status)
	}
	return d.save(u.Path, path, resp.Body)
}

// downloadBlob downloads the specified file from blob storage.
func (d *downloader) downloadBlob(ctx context.Context, path string) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("ffutil: parsing url '%s': %v", path, err)
	}
	bucket, err := OpenBucket(ctx, u.Scheme+"://"+u.Host)
	if err != nil {
		return "", err
	}
	r, err := bucket.NewReader(ctx, strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return "", fmt.Errorf("ffutil: downloading '%s': %v", path, err)
	}
	defer r.Close()
	return d.save(u.Path, path, r)
}

// save copies r to a new local file named after remotePath.
func (d *downloader) save(remotePath, source string, r io.Reader) (string, error) {
	w, err := d.create(remotePath)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(w, r)
	if err != nil {
		w.Close()
		return "", fmt.Errorf("ffutil: downloading '%s': %v", source, err)
	}
	if err = w.Close(); err != nil {
		return "", fmt.Errorf("ffutil: downloading '%s': %v", source, err)
	}
	Log.WithFields(logrus.Fields{
		"source": source,
		"local":  w.Name(),
		"bytes":  n,
	}).Info("downloaded input file")
	return w.Name(), nil
}

// cleanup removes the downloaded files.
func (d *downloader) cleanup() {
	if d.dir != "" {
		os.RemoveAll(d.dir)
		d.dir = ""
	}
}

// IsBlob returns whether the given filename represents a blob.
// (i.e., if it starts with `gs://`, 's3://', or 'file://').
func IsBlob(path string) bool {
	return strings.HasPrefix(path, "gs://") || strings.HasPrefix(path, "s3://") || strings.HasPrefix(path, "file://")
}

// OpenBucket returns the blob storage bucket specified by bucketName,
// where bucketName must be in the format 'provider://name' where provider
// is the name of the storage provider and name is the name of the bucket.
// Even if name contains subdirectories, only the base directory name will be
// used when opening the bucket.
// The currently accepted storage providers are "file" for the local filesystem
// (relative to the working directory), "gs" for Google Cloud Storage, and
// "s3" for AWS S3.
func OpenBucket(ctx context.Context, bucketName string) (*blob.Bucket, error) {
	u, err := url.Parse(bucketName)
	if err != nil {
		return nil, fmt.Errorf("ffutil.OpenBucket: %v", err)
	}
	switch u.Scheme {
	case "file":
		return fileblob.NewBucket(u.Hostname())
	case "gs":
		return gsBucket(ctx, u.Hostname())
	case "s3":
		return s3Bucket(ctx, u.Hostname())
	default:
		return nil, fmt.Errorf("ffutil.OpenBucket: invalid provider %s", u.Scheme)
	}
}

func gsBucket(ctx context.Context, name string) (*blob.Bucket, error) {
	// See here for information on credentials:
	// https://cloud.google.com/docs/authentication/getting-started
	creds, err := gcp.DefaultCredentials(ctx)
	if err != nil {
		return nil, err
	}
	c, err := gcp.NewHTTPClient(gcp.DefaultTransport(), gcp.CredentialsTokenSource(creds))
	if err != nil {
		return nil, err
	}
	return gcsblob.OpenBucket(ctx, name, c)
}

// s3Bucket opens an s3 storage bucket. It assumes the following
// environment variables are set: AWS_REGION, AWS_ACCESS_KEY_ID, and
// AWS_SECRET_ACCESS_KEY.
func s3Bucket(ctx context.Context, name string) (*blob.Bucket, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	c := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewEnvCredentials(),
	}
	s, err := session.NewSession(c)
	if err != nil {
		return nil, err
	}
	return s3blob.OpenBucket(ctx, s, name)
}
