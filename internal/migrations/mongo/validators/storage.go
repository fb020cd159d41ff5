package validators

import "go.mongodb.org/mongo-driver/bson"

var StorageValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"name",
			"storage_type",
			"slot_volume",
			"slots",
			"active",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"address": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"storage_type": bson.M{
				"enum": []string{"warehouse", "outside"},
			},

			"width": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"length": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"gate_height": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"gate_width": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"frost_free": bson.M{
				"bsonType": "bool",
			},

			"slot_volume": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  1,
			},

			"gate_positioning": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"enum": []string{"front", "back", "side"},
				},
			},

			"active": bson.M{
				"bsonType": "bool",
			},

			"slots": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"id", "name", "bookings"},
					"properties": bson.M{
						"id": bson.M{
							"bsonType": "long",
							"minimum":  1,
						},
						"name": bson.M{
							"bsonType":  "string",
							"minLength": 1,
							"maxLength": 20,
						},
						"bookings": bson.M{
							"bsonType": "array",
							"items": bson.M{
								"bsonType": "object",
								"required": []string{
									"id",
									"start_date",
									"end_date",
									"company_name",
								},
								"properties": bson.M{
									"id": bson.M{
										"bsonType": "string",
									},
									"start_date": bson.M{
										"bsonType": "date",
									},
									"end_date": bson.M{
										"bsonType": "date",
									},
									"responsible_person": bson.M{
										"bsonType":  "string",
										"maxLength": 100,
									},
									"company_name": bson.M{
										"bsonType":  "string",
										"minLength": 2,
										"maxLength": 100,
									},
									"company_email": bson.M{
										"bsonType": "string",
									},
									"company_tlf": bson.M{
										"bsonType":  "string",
										"maxLength": 20,
									},
								},
							},
						},
					},
				},
			},
		},
	},
}
