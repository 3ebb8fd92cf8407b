// Package eventos reads the external events.json feed: the record shape, the
// free-text type/status mapping tables and the day/month and hour-range
// parsers shared by the catalog endpoint and the batch importer.
package eventos

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Registro is one raw event record as published in the feed.
type Registro struct {
	Code     string `json:"code"`
	Title    string `json:"title"`
	Speaker  string `json:"speaker"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Faculty  string `json:"faculty"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Capacity *int   `json:"capacity,omitempty"`
}

// tipoMapping normalizes the feed's free-text activity types, including the
// accented and English variants seen in real exports.
var tipoMapping = map[string]string{
	"ponencia":            "ponencia",
	"sesion_interactiva":  "sesion_interactiva",
	"sesion_experto":      "sesion_experto",
	"tour":                "tour",
	"sesión interactiva":  "sesion_interactiva",
	"sesión experto":      "sesion_experto",
	"sesión de experto":   "sesion_experto",
	"interactive session": "sesion_interactiva",
	"expert session":      "sesion_experto",
}

var estadoMapping = map[string]string{
	"disponible": "disponible",
	"available":  "disponible",
	"cerrada":    "cerrada",
	"closed":     "cerrada",
	"cancelada":  "cancelada",
	"cancelled":  "cancelada",
	"canceled":   "cancelada",
}

// MapearTipo normalizes a feed activity type. Unmapped types are a record
// error, not a silent default.
func MapearTipo(tipo string) (string, bool) {
	normalizado, ok := tipoMapping[strings.ToLower(strings.TrimSpace(tipo))]
	return normalizado, ok
}

// MapearEstado normalizes a feed status. Unmapped statuses fall back to
// disponible.
func MapearEstado(estado string) string {
	if normalizado, ok := estadoMapping[strings.ToLower(strings.TrimSpace(estado))]; ok {
		return normalizado
	}
	return "disponible"
}

// ParseFecha parses the feed's day/month form ("23/9") against a fixed year.
// Out-of-range days and months are rejected rather than rolled over.
func ParseFecha(s string, year int) (time.Time, error) {
	partes := strings.Split(strings.TrimSpace(s), "/")
	if len(partes) != 2 {
		return time.Time{}, fmt.Errorf("fecha %q: se espera día/mes", s)
	}
	dia, err := strconv.Atoi(partes[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: día inválido", s)
	}
	mes, err := strconv.Atoi(partes[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: mes inválido", s)
	}
	if mes < 1 || mes > 12 {
		return time.Time{}, fmt.Errorf("fecha %q: mes fuera de rango", s)
	}
	fecha := time.Date(year, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (32/1 becomes 1/2); reject that.
	if fecha.Day() != dia || fecha.Month() != time.Month(mes) {
		return time.Time{}, fmt.Errorf("fecha %q: día fuera de rango", s)
	}
	return fecha, nil
}

// Hora is a wall-clock time of day from the feed.
type Hora struct {
	Horas   int
	Minutos int
}

// Sobre anchors the hour on the given date.
func (h Hora) Sobre(fecha time.Time) time.Time {
	return time.Date(fecha.Year(), fecha.Month(), fecha.Day(), h.Horas, h.Minutos, 0, 0, fecha.Location())
}

// ParseRangoHoras parses the feed's hour range ("8:00 - 10:30", "8 - 10").
// Hours and minutes out of range are rejected.
func ParseRangoHoras(s string) (inicio, fin Hora, err error) {
	partes := strings.Split(s, " - ")
	if len(partes) != 2 {
		return Hora{}, Hora{}, fmt.Errorf("rango de horas %q: se espera \"inicio - fin\"", s)
	}
	if inicio, err = parseHora(partes[0]); err != nil {
		return Hora{}, Hora{}, fmt.Errorf("rango de horas %q: %w", s, err)
	}
	if fin, err = parseHora(partes[1]); err != nil {
		return Hora{}, Hora{}, fmt.Errorf("rango de horas %q: %w", s, err)
	}
	return inicio, fin, nil
}

func parseHora(s string) (Hora, error) {
	s = strings.TrimSpace(s)
	horas, minutos := s, "0"
	if antes, despues, ok := strings.Cut(s, ":"); ok {
		horas, minutos = antes, despues
	}
	h, err := strconv.Atoi(horas)
	if err != nil || h < 0 || h > 23 {
		return Hora{}, fmt.Errorf("hora %q inválida", s)
	}
	m, err := strconv.Atoi(minutos)
	if err != nil || m < 0 || m > 59 {
		return Hora{}, fmt.Errorf("minutos de %q inválidos", s)
	}
	return Hora{Horas: h, Minutos: m}, nil
}

// CargarArchivo reads and decodes the events feed.
func CargarArchivo(path string) ([]Registro, error) {
	datos, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var registros []Registro
	if err := json.Unmarshal(datos, &registros); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", path, err)
	}
	return registros, nil
}

// NombreExpositor strips the parenthesized affiliation and splits the
// speaker's display name into first name and surname.
func NombreExpositor(speaker string) (nombre, apellido string, ok bool) {
	limpio := speaker
	for {
		abre := strings.Index(limpio, "(")
		if abre < 0 {
			break
		}
		cierra := strings.Index(limpio[abre:], ")")
		if cierra < 0 {
			limpio = limpio[:abre]
			break
		}
		limpio = limpio[:abre] + limpio[abre+cierra+1:]
	}
	campos := strings.Fields(limpio)
	if len(campos) == 0 {
		return "", "", false
	}
	nombre = campos[0]
	apellido = strings.Join(campos[1:], " ")
	if apellido == "" {
		apellido = "Sin especificar"
	}
	return nombre, apellido, true
}
