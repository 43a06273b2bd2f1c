package webserver

import "net/http"

// The following are URL Path endpoints for certain API calls.
const (
	EndpointHealth = "/health"

	APIv1EndpointPalettes   = "/v1/palettes"
	APIv1EndpointPreview    = "/v1/preview"
	APIv1EndpointFinal      = "/v1/final"
	APIv1EndpointJob        = "/v1/jobs/{jobID}"
	APIv1EndpointJobQR      = "/v1/jobs/{jobID}/qr"
	APIv1EndpointJobPreview = "/v1/jobs/{jobID}/{style}/preview"
	APIv1EndpointJobTile    = "/v1/jobs/{jobID}/{style}/tiles/{tileNum}"
	APIv1EndpointLoginToken = "/v1/login/token/"
)

// APIv1Methods defines on which HTTP methods APIv1 endpoints will respond to.
// It is an uri_path => list of HTTP methods map.
var APIv1Methods = map[string][]string{
	APIv1EndpointPalettes:   {http.MethodGet},
	APIv1EndpointPreview:    {http.MethodPost},
	APIv1EndpointFinal:      {http.MethodPost},
	APIv1EndpointJob:        {http.MethodDelete},
	APIv1EndpointJobQR:      {http.MethodGet},
	APIv1EndpointJobPreview: {http.MethodGet},
	APIv1EndpointJobTile:    {http.MethodGet},
	APIv1EndpointLoginToken: {http.MethodPost},
}
