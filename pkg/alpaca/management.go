package alpaca

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerDescription is the Value of /management/v1/description.
type ServerDescription struct {
	ServerName          string `json:"ServerName"`
	Manufacturer        string `json:"Manufacturer"`
	ManufacturerVersion string `json:"ManufacturerVersion"`
	Location            string `json:"Location"`
}

// ConfiguredDevice is one entry in /management/v1/configureddevices.
type ConfiguredDevice struct {
	DeviceName   string `json:"DeviceName"`
	DeviceType   string `json:"DeviceType"`
	DeviceNumber int    `json:"DeviceNumber"`
	UniqueID     string `json:"UniqueID"`
}

// managementResponse wraps a management Value in the standard
// envelope. Management endpoints take no device transaction counter;
// the server transaction ID is fixed at zero as these calls are not
// device operations.
type managementResponse struct {
	Response
	Value interface{} `json:"Value"`
}

// ManagementAPI serves the server-level Alpaca management endpoints.
type ManagementAPI struct {
	description ServerDescription
	registry    *Registry
}

// NewManagementAPI creates the management API over the given registry.
func NewManagementAPI(description ServerDescription, registry *Registry) *ManagementAPI {
	return &ManagementAPI{description: description, registry: registry}
}

// RegisterRoutes mounts the management endpoints.
func (m *ManagementAPI) RegisterRoutes(router *gin.RouterGroup) {
	management := router.Group("/management")
	{
		management.GET("/apiversions", m.handleAPIVersions)

		v1 := management.Group("/v1")
		{
			v1.GET("/description", m.handleDescription)
			v1.GET("/configureddevices", m.handleConfiguredDevices)
		}
	}
}

func (m *ManagementAPI) respond(c *gin.Context, value interface{}) {
	clientTxn, _ := ClientField(c, "ClientTransactionID", false)
	c.JSON(http.StatusOK, managementResponse{
		Response: Response{ClientTransactionID: clientTxn},
		Value:    value,
	})
}

func (m *ManagementAPI) handleAPIVersions(c *gin.Context) {
	m.respond(c, []int{APIVersion})
}

func (m *ManagementAPI) handleDescription(c *gin.Context) {
	m.respond(c, m.description)
}

func (m *ManagementAPI) handleConfiguredDevices(c *gin.Context) {
	ids := m.registry.List()
	devices := make([]ConfiguredDevice, 0, len(ids))
	for _, id := range ids {
		devices = append(devices, ConfiguredDevice{
			DeviceName:   id.Name,
			DeviceType:   id.Type,
			DeviceNumber: id.Number,
			UniqueID:     id.UniqueID,
		})
	}
	m.respond(c, devices)
}
