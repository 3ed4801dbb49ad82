package report

// Tenant-side SQL. All statements are Firebird dialect and run against
// the per-company database. Each template carries exactly one %s
// insertion point for the filter predicate; the predicate itself is
// rendered from static column declarations with bound parameters only.

// Revenue aggregate over the receipt fact table.
const queryRevenueTotal = `
SELECT
    SUM(vlrrecbto)
FROM
    factrc_bi
WHERE
    datarecbto >= ?
    AND datarecbto <= ?%s`

// Cost, toll, volume, shipment and invoiced-count aggregates over the
// freight fact table.
const queryFreightTotals = `
SELECT
    SUM(vlrcusto),
    SUM(vlrpedagio),
    SUM(pesofrete_ton),
    SUM(embarque),
    SUM(faturado)
FROM
    frctrc_bi
WHERE
    dataemissao >= ?
    AND dataemissao <= ?%s`

// Volume, shipments and revenue by year and month over the trailing
// two calendar years. The union aligns the freight table (emission
// date) with the receipt table (receipt date); revenue only exists on
// the receipt side and volume/shipments only on the freight side.
const queryMonthYear = `
SELECT
    ano,
    mes,
    mes_numero,
    SUM(volume),
    SUM(embarque),
    SUM(faturamento)
FROM
    (
    SELECT
        ano_emissao AS ano,
        mes_emissao AS mes,
        mes_numero,
        pesofrete_ton AS volume,
        embarque AS embarque,
        0 AS faturamento,
        codfilial,
        codcid,
        regiao
    FROM
        FRCTRC_BI
    WHERE
        ano_emissao >= EXTRACT(YEAR FROM CURRENT_TIMESTAMP) - 2
UNION ALL
    SELECT
        ano_recbto AS ano,
        mes_recbto AS mes,
        mes_numero,
        0 AS volume,
        0 AS embarque,
        vlrrecbto AS faturamento,
        codfilial,
        codcid,
        regiao
    FROM
        FACTRC_BI
    WHERE
        ano_recbto >= EXTRACT(YEAR FROM CURRENT_TIMESTAMP) - 2
) dados
WHERE 1=1%s
GROUP BY
    ano,
    mes,
    mes_numero
ORDER BY
    ano,
    mes_numero`

// Same union restricted to the current calendar month, grouped by day.
const queryCurrentMonthDaily = `
SELECT
    dia,
    SUM(volume),
    SUM(embarques),
    SUM(faturamento)
FROM
    (
    SELECT
        dia_emissao AS dia,
        pesofrete_ton AS volume,
        embarque AS embarques,
        0 AS faturamento,
        codfilial,
        codcid,
        regiao
    FROM
        FRCTRC_BI
    WHERE
        ano_emissao = EXTRACT(YEAR FROM CURRENT_TIMESTAMP)
        AND mes_numero = EXTRACT(MONTH FROM CURRENT_TIMESTAMP)
UNION ALL
    SELECT
        dia_recbto AS dia,
        0 AS volume,
        0 AS embarques,
        vlrrecbto AS faturamento,
        codfilial,
        codcid,
        regiao
    FROM
        FACTRC_BI
    WHERE
        ano_recbto = EXTRACT(YEAR FROM CURRENT_TIMESTAMP)
        AND mes_numero = EXTRACT(MONTH FROM CURRENT_TIMESTAMP)
) dados
WHERE 1=1%s
GROUP BY
    dia
ORDER BY
    dia`

// Volume, shipments and revenue grouped by branch over an operation
// date window that spans both fact tables.
const queryByBranch = `
SELECT
    filial,
    SUM(volume),
    SUM(embarques),
    SUM(faturamento)
FROM
    (
    SELECT
        filial,
        0 AS volume,
        0 AS embarques,
        vlrrecbto AS faturamento,
        codfilial,
        codcliente,
        codcid,
        regiao,
        codpro,
        datarecbto AS data_operacao
    FROM
        FACTRC_BI
UNION ALL
    SELECT
        filial,
        pesofrete_ton AS volume,
        embarque AS embarques,
        0 AS faturamento,
        codfilial,
        codcliente,
        codcid,
        regiao,
        codpro,
        dataemissao AS data_operacao
    FROM
        FRCTRC_BI
) dados
WHERE data_operacao >= ? AND data_operacao <= ?%s
GROUP BY
    filial
ORDER BY SUM(faturamento) DESC`

const queryByRegion = `
SELECT
    regiao,
    SUM(volume),
    SUM(embarques),
    SUM(faturamento)
FROM
    (
    SELECT
        regiao,
        0 AS volume,
        0 AS embarques,
        vlrrecbto AS faturamento,
        codfilial,
        codcliente,
        codcid,
        codpro,
        datarecbto AS data_operacao
    FROM
        FACTRC_BI
UNION ALL
    SELECT
        regiao,
        pesofrete_ton AS volume,
        embarque AS embarques,
        0 AS faturamento,
        codfilial,
        codcliente,
        codcid,
        codpro,
        dataemissao AS data_operacao
    FROM
        FRCTRC_BI
) dados
WHERE data_operacao >= ? AND data_operacao <= ?%s
GROUP BY
    regiao
ORDER BY SUM(faturamento) DESC`

// City keys are rendered as "cidade-UF" so homonymous cities in
// different states stay distinct.
const queryByCity = `
SELECT
    cidade || '-' || coduf,
    SUM(volume),
    SUM(embarques),
    SUM(faturamento)
FROM
    (
    SELECT
        cidade,
        coduf,
        0 AS volume,
        0 AS embarques,
        vlrrecbto AS faturamento,
        codfilial,
        codcid,
        regiao,
        datarecbto AS data_operacao
    FROM
        FACTRC_BI
UNION ALL
    SELECT
        cidade,
        coduf,
        pesofrete_ton AS volume,
        embarque AS embarques,
        0 AS faturamento,
        codfilial,
        codcid,
        regiao,
        dataemissao AS data_operacao
    FROM
        FRCTRC_BI
) dados
WHERE data_operacao >= ? AND data_operacao <= ?%s
GROUP BY
    cidade || '-' || coduf
ORDER BY SUM(faturamento) DESC`

// Revenue by client over the receipt window. The inner select exposes
// the filterable columns so the outer predicate can reference them.
const queryByClient = `
SELECT
    cliente,
    SUM(vlrrecbto)
FROM
    (
    SELECT
        cliente,
        vlrrecbto,
        codfilial,
        codcliente,
        regiao,
        codpro,
        datarecbto
    FROM
        FACTRC_BI
)
WHERE
    datarecbto >= ? AND datarecbto <= ?%s
GROUP BY
    cliente
ORDER BY
    SUM(vlrrecbto) DESC`

const queryByProduct = `
SELECT
    produto,
    SUM(vlrrecbto)
FROM
    (
    SELECT
        produto,
        vlrrecbto,
        codfilial,
        codcliente,
        regiao,
        codpro,
        datarecbto
    FROM
        FACTRC_BI
)
WHERE
    datarecbto >= ? AND datarecbto <= ?%s
GROUP BY
    produto
ORDER BY
    SUM(vlrrecbto) DESC`

// Raw invoice rows for the billing table view.
const queryInvoices = `
SELECT
    nrofatura,
    anofatura,
    datarecbto,
    vlrrecbto,
    filial,
    cliente,
    cidade,
    coduf,
    produto
FROM
    factrc_bi
WHERE datarecbto >= ? AND datarecbto <= ?%s`
