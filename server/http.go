package server

import (
	"strings"

	"boreas/geo"
	. "boreas/helper"
	"boreas/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/xhhuango/json"
	"github.com/zsefvlol/timezonemapper"
)

type RegionResponse struct {
	Country  string    `json:"country"`
	Subunit  string    `json:"subunit,omitempty"`
	Padding  float64   `json:"padding"`
	Area     []float64 `json:"area"`
	Timezone string    `json:"timezone"`
}

type InventoryFile struct {
	Name      string   `json:"name"`
	SizeBytes int64    `json:"size_bytes"`
	Variables []string `json:"variables,omitempty"`
	ReadError string   `json:"read_error,omitempty"`
}

type InventoryGroup struct {
	Country  string          `json:"country"`
	Variable string          `json:"variable"`
	Files    []InventoryFile `json:"files"`
}

// StartServer serves the cache inventory and region resolution. It is
// read-only: downloads only ever run from the command line.
func StartServer(port, rootDir string, resolver *geo.Resolver) {

	app := fiber.New(fiber.Config{
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
		ServerHeader:          "boreas",
	})

	app.Get("/region", func(c *fiber.Ctx) error {
		country := c.Query("country")
		if country == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No country specified"})
		}

		code, subunit, _ := strings.Cut(country, ":")
		padding := c.QueryFloat("padding", 0)

		box, err := resolver.Resolve(code, subunit, padding)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}

		lat, lng := box.Center()

		return c.JSON(RegionResponse{
			Country:  code,
			Subunit:  subunit,
			Padding:  padding,
			Area:     box.Area(),
			Timezone: timezonemapper.LatLngToTimezoneString(lat, lng),
		})
	})

	app.Get("/inventory", func(c *fiber.Ctx) error {
		groups, err := inventory.Scan(rootDir)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		describe := c.QueryBool("describe")

		out := make([]InventoryGroup, 0, len(groups))
		for _, g := range groups {
			files := make([]InventoryFile, 0, len(g.Files))
			for _, f := range g.Files {
				file := InventoryFile{Name: f.Name, SizeBytes: f.SizeBytes}
				if describe {
					vars, err := inventory.Describe(f.Path)
					if err != nil {
						file.ReadError = err.Error()
					} else {
						file.Variables = vars
					}
				}
				files = append(files, file)
			}
			out = append(out, InventoryGroup{Country: g.Country, Variable: g.Variable, Files: files})
		}

		return c.JSON(out)
	})

	Log.Info().Msg("HTTP server started on port " + port)

	Log.Fatal().Err(app.Listen(":" + port)).Msg("Failed to start HTTP server")
}
