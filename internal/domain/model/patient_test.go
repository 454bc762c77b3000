package model_test

import (
	"encoding/json"
	"testing"

	"github.com/medwatch/triage/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPatient_Identifier(t *testing.T) {
	Convey("Given raw patient records", t, func() {
		Convey("When the id is a plain string", func() {
			id, ok := model.Patient{ID: "P001"}.Identifier()
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "P001")
		})

		Convey("When the id carries surrounding whitespace", func() {
			id, ok := model.Patient{ID: "  P002 "}.Identifier()
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "P002")
		})

		Convey("When the id is a JSON number", func() {
			id, ok := model.Patient{ID: float64(42)}.Identifier()
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "42")
		})

		Convey("When the id is blank, null, or wrong-typed", func() {
			for _, raw := range []interface{}{"", "   ", nil, true, map[string]interface{}{}} {
				_, ok := model.Patient{ID: raw}.Identifier()
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestAlertPayload_JSON(t *testing.T) {
	Convey("Given an alert payload", t, func() {
		p := model.AlertPayload{
			HighRisk:    []string{"P1"},
			Fever:       []string{"P2", "P3"},
			DataQuality: []string{},
		}

		Convey("Then it should marshal with the API's field names", func() {
			b, err := json.Marshal(p)
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"high_risk_patients":["P1"]`)
			So(string(b), ShouldContainSubstring, `"fever_patients":["P2","P3"]`)
			So(string(b), ShouldContainSubstring, `"data_quality_issues":[]`)
		})
	})
}

func TestPatient_Decode(t *testing.T) {
	Convey("Given a record with inconsistently typed fields", t, func() {
		raw := `{"patient_id":"P9","age":"45","temperature":101.2,"blood_pressure":null}`

		var p model.Patient
		So(json.Unmarshal([]byte(raw), &p), ShouldBeNil)

		Convey("Then every field should decode without loss", func() {
			So(p.ID, ShouldEqual, "P9")
			So(p.Age, ShouldEqual, "45")
			So(p.Temperature, ShouldEqual, 101.2)
			So(p.BloodPressure, ShouldBeNil)
		})
	})
}
