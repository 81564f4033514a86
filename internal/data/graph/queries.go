package graph

// Read-only Cypher used by the store. Labels follow the loader's schema:
// (:Disease)-[:ASSOCIATED_WITH]->(:Symptom).

const emergencySymptomsCypher = `
UNWIND $names AS n
MATCH (s:Symptom {name: n})
WHERE s.emergency = true
RETURN coalesce(toString(s.id), elementId(s)) AS id,
       s.name AS name,
       s.severity AS severity,
       s.frequency AS frequency,
       s.emergency AS emergency
`

const conditionProfilesCypher = `
MATCH (d:Disease)-[:ASSOCIATED_WITH]->(hit:Symptom)
WHERE hit.name IN $names
WITH DISTINCT d
MATCH (d)-[r:ASSOCIATED_WITH]->(s:Symptom)
RETURN coalesce(toString(d.id), elementId(d)) AS id,
       d.name AS name,
       d.code AS code,
       d.type AS type,
       d.emergency AS emergency,
       collect({symptom: s.name, severity: r.severity, frequency: r.frequency, confidence: r.confidence}) AS associations
ORDER BY name
`

const projectionRowsCypher = `
MATCH (d:Disease)-[r:ASSOCIATED_WITH]->(s:Symptom)
WHERE d.name IN $conditions
RETURN coalesce(toString(d.id), elementId(d)) AS condition_id,
       d.name AS condition_name,
       d.code AS condition_code,
       d.type AS condition_type,
       d.emergency AS condition_emergency,
       coalesce(toString(s.id), elementId(s)) AS symptom_id,
       s.name AS symptom_name,
       s.severity AS symptom_severity,
       s.frequency AS symptom_frequency,
       s.emergency AS symptom_emergency,
       r.severity AS severity,
       r.frequency AS frequency,
       r.confidence AS confidence
ORDER BY coalesce(r.severity, 1) DESC, d.name, s.name
LIMIT $limit
`

const suggestSymptomsCypher = `
MATCH (s:Symptom)
WHERE toLower(s.name) CONTAINS toLower($q)
RETURN DISTINCT s.name AS name
ORDER BY name
LIMIT $limit
`

const labelCountsCypher = `
MATCH (n)
UNWIND labels(n) AS label
RETURN label, count(*) AS count
ORDER BY label
`

const relationshipCountsCypher = `
MATCH ()-[r]->()
RETURN type(r) AS type, count(*) AS count
ORDER BY type
`

const nodeCountCypher = `MATCH (n) RETURN count(n) AS count`
