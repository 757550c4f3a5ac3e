package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// SuggestTags returns label suggestions for a base64-encoded log photo
// ("beach", "temple", "food", ...). The app offers them as tappable tag
// chips; nothing is applied without the user accepting.
func (r *RekognitionService) SuggestTags(base64Img string) ([]string, error) {
	idx := strings.Index(base64Img, ",")
	if idx < 0 || !strings.HasPrefix(base64Img, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(base64Img[idx+1:])
	if err != nil {
		return nil, err
	}

	out, err := r.client.DetectLabels(context.TODO(), &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(8),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, l := range out.Labels {
		tags = append(tags, strings.ToLower(*l.Name))
	}
	return tags, nil
}
