// Package zoo fetches published pretrained checkpoints from the
// model-zoo object store into a local cache directory.
package zoo

import (
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	endpointEnv  = "OSS_ENDPOINT"
	accessKeyEnv = "AWS_ACCESS_KEY_ID"
	secretKeyEnv = "AWS_SECRET_ACCESS_KEY"

	zooBucket = "imgclsmob"
)

// checkpoints maps a model name to its published object key.
var checkpoints = map[string]string{
	"mlp":      "models/mlp-2031.ckpt",
	"lenet":    "models/lenet-1663.ckpt",
	"resnet8":  "models/resnet8-0862.ckpt",
	"resnet14": "models/resnet14-0636.ckpt",
}

// objectDownloader is the slice of s3manager.Downloader the store uses.
type objectDownloader interface {
	Download(w io.WriterAt, input *s3.GetObjectInput, options ...func(*s3manager.Downloader)) (int64, error)
}

type Store struct {
	downloader objectDownloader
	cacheDir   string
}

func NewStore() *Store {
	config := &aws.Config{
		Endpoint:         aws.String(os.Getenv(endpointEnv)),
		Region:           aws.String("dummy"),
		S3ForcePathStyle: aws.Bool(true),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv(accessKeyEnv), os.Getenv(secretKeyEnv), ""),
	}
	sess := session.Must(session.NewSession())
	return &Store{
		downloader: s3manager.NewDownloaderWithClient(s3.New(sess, config)),
		cacheDir:   defaultCacheDir(),
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".imgclsmob", "models")
	}
	return filepath.Join(home, ".imgclsmob", "models")
}

// Fetch returns the local path of the pretrained checkpoint for a
// model, downloading it on a cache miss.
func (st *Store) Fetch(modelName string) (string, error) {
	key, ok := checkpoints[modelName]
	if !ok {
		return "", errors.Errorf("no pretrained checkpoint published for model %v", modelName)
	}

	var dst = filepath.Join(st.cacheDir, filepath.Base(key))
	if _, err := os.Stat(dst); err == nil {
		log.Debugf("checkpoint cache hit: %v", dst)
		return dst, nil
	}

	if err := os.MkdirAll(st.cacheDir, os.ModePerm); err != nil {
		return "", errors.Wrapf(err, "create checkpoint cache %v", st.cacheDir)
	}

	log.Infof("Downloading %v/%v to %v", zooBucket, key, dst)
	writer, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer writer.Close()

	_, err = st.downloader.Download(writer, &s3.GetObjectInput{
		Bucket: aws.String(zooBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		writer.Close()
		os.Remove(dst)
		return "", errors.Wrapf(err, "download checkpoint for %v", modelName)
	}
	return dst, nil
}
