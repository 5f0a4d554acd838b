package driver

const SaveProjectQuery = `
MERGE (p:Project {uuid: $uuid})
SET p.name = $name, p.created_at = $created_at
RETURN p.uuid AS uuid
`

const SaveNodeQuery = `
MERGE (n:Node {uuid: $uuid})
SET n.project_id = $project_id,
    n.type = $type,
    n.name = $name,
    n.x = $x,
    n.y = $y,
    n.data = $data
RETURN n.uuid AS uuid
`

const SaveEdgeQuery = `
MATCH (s:Node {uuid: $source_uuid, project_id: $project_id})
MATCH (t:Node {uuid: $target_uuid, project_id: $project_id})
MERGE (s)-[r:CONNECTS {uuid: $uuid}]->(t)
RETURN r.uuid AS uuid
`

const ProjectNodesQuery = `
MATCH (n:Node {project_id: $project_id})
RETURN n.uuid AS uuid, n.type AS type, n.name AS name, n.x AS x, n.y AS y, n.data AS data
ORDER BY n.uuid
`

const ProjectEdgesQuery = `
MATCH (s:Node {project_id: $project_id})-[r:CONNECTS]->(t:Node)
RETURN r.uuid AS uuid, s.uuid AS source, t.uuid AS target
ORDER BY r.uuid
`

const NodeDataQuery = `
MATCH (n:Node {uuid: $uuid, project_id: $project_id})
RETURN n.data AS data
`

const SetNodeDataQuery = `
MATCH (n:Node {uuid: $uuid, project_id: $project_id})
SET n.data = $data
RETURN n.uuid AS uuid
`
