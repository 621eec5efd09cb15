package utils

import (
	"aula/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// RenderRequest is the payload sent to the external certificate renderer.
type RenderRequest struct {
	CertificateCode string `json:"certificate_code"`
	StudentName     string `json:"student_name"`
	CourseTitle     string `json:"course_title"`
	IssuedAt        string `json:"issued_at"`
}

// RequestCertificateRender asks the external renderer to produce the PDF for
// an issued certificate. Rendering happens outside this system; failures are
// logged and never fail the issuing request.
func RequestCertificateRender(req RenderRequest) {
	url := config.AppConfig.CertRendererURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(url)
	if err != nil {
		log.Printf("Error requesting certificate render for %s: %v", req.CertificateCode, err)
		return
	}
	if resp.IsError() {
		log.Printf("Certificate renderer returned %d for %s", resp.StatusCode(), req.CertificateCode)
	}
}
