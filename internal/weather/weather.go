package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"net/http"
	"net/url"
	"time"

	"surgewatch/internal/logging"
	"surgewatch/internal/models"
)

const requestTimeout = 10 * time.Second

// aqiScale maps the OpenWeatherMap 1-5 air quality index onto the US AQI
// ranges the risk rules are written against.
var aqiScale = map[int]int{1: 25, 2: 50, 3: 100, 4: 150, 5: 200}

// Client fetches live weather and air quality for a city. With no API key it
// serves deterministic mock conditions so the rest of the system keeps
// working offline.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *logging.Logger
	now     func() time.Time
}

func NewClient(apiKey string, logger *logging.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
		now:     time.Now,
	}
}

// Configured reports whether live fetching is enabled.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Current returns conditions for the city plus the data source, either
// "openweathermap" or "simulated". Failures fall back to the mock.
func (c *Client) Current(ctx context.Context, city string) (models.EnvironmentContext, string) {
	if c.apiKey == "" {
		return c.mock(city), "simulated"
	}
	env, err := c.fetch(ctx, city)
	if err != nil {
		c.logger.Warnf("weather fetch for %s failed, using mock: %v", city, err)
		return c.mock(city), "simulated"
	}
	return env, "openweathermap"
}

func (c *Client) fetch(ctx context.Context, city string) (models.EnvironmentContext, error) {
	var weather struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	}
	q := url.Values{"q": {city}, "appid": {c.apiKey}, "units": {"metric"}}
	if err := c.getJSON(ctx, "/data/2.5/weather?"+q.Encode(), &weather); err != nil {
		return models.EnvironmentContext{}, err
	}

	var air struct {
		List []struct {
			Main struct {
				AQI int `json:"aqi"`
			} `json:"main"`
		} `json:"list"`
	}
	q = url.Values{
		"lat":   {fmt.Sprintf("%f", weather.Coord.Lat)},
		"lon":   {fmt.Sprintf("%f", weather.Coord.Lon)},
		"appid": {c.apiKey},
	}
	if err := c.getJSON(ctx, "/data/2.5/air_pollution?"+q.Encode(), &air); err != nil {
		return models.EnvironmentContext{}, err
	}

	aqi := 75
	if len(air.List) > 0 {
		if mapped, ok := aqiScale[air.List[0].Main.AQI]; ok {
			aqi = mapped
		}
	}
	return models.EnvironmentContext{
		Temperature: weather.Main.Temp,
		Humidity:    weather.Main.Humidity,
		AQI:         aqi,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather API returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// mock derives stable conditions from the city name and day of year.
func (c *Client) mock(city string) models.EnvironmentContext {
	h := fnv.New32a()
	_, _ = h.Write([]byte(city))
	offset := float64(h.Sum32() % 20)

	doy := float64(c.now().YearDay())
	temp := 18 + offset/2 + 10*math.Sin((doy-105)*2*math.Pi/365)
	humidity := 50 + offset + 15*math.Sin((doy-80)*2*math.Pi/365)
	aqi := int(70 + offset*2 - 25*math.Sin((doy-105)*2*math.Pi/365))

	return models.EnvironmentContext{
		Temperature: math.Round(temp*10) / 10,
		Humidity:    math.Round(humidity*10) / 10,
		AQI:         aqi,
	}
}
