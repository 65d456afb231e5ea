// Command detect runs an OTX detection model over a directory of images and
// prints the resulting annotations as JSON, one object per image.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/wonjuleee/datumaro/annotations"
	"github.com/wonjuleee/datumaro/images"
	"github.com/wonjuleee/datumaro/inference"
	"github.com/wonjuleee/datumaro/interpreters"
	"github.com/wonjuleee/datumaro/util"
)

const (
	// Default tensor names of the OpenVINO-exported OTX detection models.
	defaultInputName  = "image"
	defaultBoxesName  = "boxes"
	defaultLabelsName = "labels"
)

// imageResult is one image's detections in the output stream.
type imageResult struct {
	Path        string             `json:"path"`
	Annotations []annotationResult `json:"annotations"`
}

type annotationResult struct {
	X1    float32  `json:"x1"`
	Y1    float32  `json:"y1"`
	X2    float32  `json:"x2"`
	Y2    float32  `json:"y2"`
	Label int      `json:"label"`
	Score *float32 `json:"score,omitempty"`
}

func toResult(path string, bboxes []annotations.Bbox) imageResult {
	out := imageResult{Path: path, Annotations: make([]annotationResult, 0, len(bboxes))}
	for _, b := range bboxes {
		a := annotationResult{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2, Label: b.Label}
		if b.HasScore {
			score := b.Score
			a.Score = &score
		}
		out.Annotations = append(out.Annotations, a)
	}
	return out
}

func main() {
	var (
		modelPath   string
		interpName  string
		imageDir    string
		libraryPath string
		inputName   string
		boxesName   string
		labelsName  string
	)
	flag.StringVar(&modelPath, "model", "", "Path to the ONNX model file")
	flag.StringVar(&interpName, "interpreter", string(interpreters.NameATSS),
		"Model interpreter name (otx_atss, otx_ssd)")
	flag.StringVar(&imageDir, "dir", "", "Directory of images to process")
	flag.StringVar(&libraryPath, "onnxruntime", "",
		"Path to the onnxruntime shared library (optional)")
	flag.StringVar(&inputName, "input-name", defaultInputName, "Model input tensor name")
	flag.StringVar(&boxesName, "boxes-name", defaultBoxesName, "Boxes output tensor name")
	flag.StringVar(&labelsName, "labels-name", defaultLabelsName, "Labels output tensor name")
	flag.Parse()

	if modelPath == "" || imageDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}

	interp, err := interpreters.New(interpreters.Name(interpName))
	if err != nil {
		log.Fatalf("Failed to create interpreter: %v", err)
	}

	detector, err := inference.NewDetector(interp, inference.SessionConfig{
		ModelPath:  modelPath,
		InputName:  inputName,
		BoxesName:  boxesName,
		LabelsName: labelsName,
	})
	if err != nil {
		log.Fatalf("Failed to create detector: %v", err)
	}
	defer detector.Close()

	files, err := util.LoadDirectoryImageFiles(imageDir)
	if err != nil {
		log.Fatalf("Failed to load images: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("No images found in %s", imageDir)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, file := range files {
		img, err := images.DecodeBGR(file.Data)
		if err != nil {
			log.Fatalf("Failed to decode %s: %v", file.Path, err)
		}

		bboxes, err := detector.Detect(img)
		if err != nil {
			log.Fatalf("Detection failed for %s: %v", file.Path, err)
		}

		if err := enc.Encode(toResult(file.Path, bboxes)); err != nil {
			log.Fatalf("Failed to write result: %v", err)
		}
	}
}
